// Package like contains post likes and their PostgreSQL store. A user can
// like a post at most once; the storage layer enforces the uniqueness.
package like

import (
	"errors"
	"time"
)

// ErrAlreadyLiked is returned when the user has already liked the post.
var ErrAlreadyLiked = errors.New("post already liked")

// ErrNotFound is returned when no like matches the lookup.
var ErrNotFound = errors.New("like not found")

// Like records one user liking one post.
type Like struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
