/*
Package user contains the durable user record and its PostgreSQL store.

A User is created on first successful external-identity login and anchors every
other record in the system. Follower, following, and saved-post relations are
kept as sets with atomic add-if-absent semantics at the storage layer.
*/
package user

import (
	"errors"
	"time"

	"learnly/internal/app/identity"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// User is the application's durable identity record.
type User struct {
	ID         string            `json:"id"`
	Provider   identity.Provider `json:"provider"`
	ProviderID string            `json:"providerId"`
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Bio        string            `json:"bio"`
	Picture    string            `json:"picture"`
	Followers  []string          `json:"followers"`
	Following  []string          `json:"following"`
	SavedPosts []string          `json:"savedPosts"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Identity returns the external identity the user record is keyed by.
func (u *User) Identity() identity.External {
	return identity.External{Provider: u.Provider, SubjectID: u.ProviderID}
}

// ProfileUpdate carries a partial profile edit. Nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string `json:"name"`
	Bio     *string `json:"bio"`
	Picture *string `json:"picture"`
}

// SearchFilter narrows a user search. Empty fields match everything.
type SearchFilter struct {
	Name  string
	Email string
}
