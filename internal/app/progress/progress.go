// Package progress contains learning progress updates and their PostgreSQL
// store. An update is a short templated note a user posts against one of
// their plans.
package progress

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no progress update matches the lookup.
var ErrNotFound = errors.New("progress update not found")

// Update is one progress note against a learning plan.
type Update struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	PlanID       string    `json:"planId"`
	Content      string    `json:"content"`
	TemplateType string    `json:"templateType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Edit carries a partial change to an update. Nil fields are left untouched.
type Edit struct {
	Content      *string `json:"content"`
	TemplateType *string `json:"templateType"`
}
