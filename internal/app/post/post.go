/*
Package post contains feed posts and their PostgreSQL store.
*/
package post

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no post matches the lookup.
var ErrNotFound = errors.New("post not found")

// Post is a feed entry with optional media attachments.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	MediaURLs []string  `json:"mediaUrls"`
	FileTypes []string  `json:"fileTypes"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries a partial post edit. Nil fields are left untouched.
type Update struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	MediaURLs []string `json:"mediaUrls"`
	FileTypes []string `json:"fileTypes"`
	Tags      []string `json:"tags"`
}
