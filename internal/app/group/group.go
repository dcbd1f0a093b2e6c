/*
Package group contains the chat group record and its PostgreSQL store.

A group's member list is a set: membership growth is append-only and the store
adds members with a single atomic add-if-absent statement, so concurrent joins
can never produce duplicates.
*/
package group

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no group matches the lookup.
var ErrNotFound = errors.New("group not found")

// Group is a named chat room.
type Group struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	Members       []string  `json:"members"`
	LastMessageID string    `json:"lastMessageId,omitempty"`
	RelatedPlanID string    `json:"relatedPlanId,omitempty"`

	// IsMember is a listing-time enrichment for the requesting user. It is not
	// persisted.
	IsMember bool `json:"isMember"`
}

// Descriptor carries the caller-supplied fields of a group creation.
type Descriptor struct {
	Name          string
	Description   string
	CreatedBy     string
	Members       []string
	RelatedPlanID string
	CreatedAt     time.Time
}
