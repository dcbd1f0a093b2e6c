// Package comment contains post comments and their PostgreSQL store.
package comment

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no comment matches the lookup.
var ErrNotFound = errors.New("comment not found")

// Comment is one comment on a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
