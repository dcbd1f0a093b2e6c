/*
Package plan contains learning plans and their PostgreSQL store.

A plan's topic list is stored as a single JSONB document: topics are always
read and written as a unit and have no identity outside their plan, so
normalizing them into rows would buy nothing.
*/
package plan

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no plan matches the lookup.
var ErrNotFound = errors.New("learning plan not found")

// Resource is a study link attached to a topic.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type,omitempty"`
}

// Topic is one unit of study inside a plan.
type Topic struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Resources   []Resource `json:"resources,omitempty"`
	Completed   bool       `json:"completed"`
}

// LearningPlan is a user-owned study plan.
type LearningPlan struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Topics         []Topic    `json:"topics"`
	IsPublic       bool       `json:"isPublic"`
	Followers      []string   `json:"followers"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
}

// Update carries a partial plan edit. Nil fields are left untouched.
type Update struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Topics         []Topic    `json:"topics"`
	IsPublic       *bool      `json:"isPublic"`
	CompletionDate *time.Time `json:"completionDate"`
}

// CopyForImport produces a fresh plan for a new owner from a source plan. The
// copy is retitled with an "(Imported)" suffix so the owner can tell it from
// plans they authored. Topic progress never travels with the copy: every topic
// starts incomplete, the follower list starts empty, and any completion date
// is cleared. Nested resource slices are deep-copied so later edits cannot
// alias the source.
func CopyForImport(src LearningPlan, newOwnerID string) LearningPlan {
	topics := make([]Topic, len(src.Topics))
	for i, t := range src.Topics {
		copied := t
		copied.Completed = false
		if len(t.Resources) > 0 {
			copied.Resources = make([]Resource, len(t.Resources))
			copy(copied.Resources, t.Resources)
		}
		topics[i] = copied
	}

	return LearningPlan{
		UserID:      newOwnerID,
		Title:       src.Title + " (Imported)",
		Description: src.Description,
		Topics:      topics,
		IsPublic:    false,
		Followers:   []string{},
	}
}
