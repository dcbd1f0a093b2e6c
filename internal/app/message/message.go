/*
Package message contains the chat message record and its PostgreSQL store.

History is ordered by send time, with the insertion sequence as a tie-break so
messages stamped within the same instant keep a stable order.
*/
package message

import (
	"errors"
	"time"
)

// StatusSent is stamped on every message when it is accepted for delivery.
const StatusSent = "sent"

// MaxContentLength bounds the size of a single chat message.
const MaxContentLength = 4000

// ErrNotFound is returned when no message matches the lookup.
var ErrNotFound = errors.New("message not found")

// Message is one chat message within a group.
type Message struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"groupId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	SentAt     time.Time `json:"sentAt"`
}
