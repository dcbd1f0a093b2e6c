/*
Package chat contains the real-time messaging core: the topic hub, the message
router, and the WebSocket client lifecycle.

A connection authenticates once at upgrade time and carries its external
identity for its whole lifetime. Clients subscribe to group topics and send
messages through the router, which persists every message before any copy is
broadcast.
*/
package chat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FrameType tags a WebSocket frame.
type FrameType string

const (
	// Inbound frame types.
	TypeSend        FrameType = "SEND"
	TypeSubscribe   FrameType = "SUBSCRIBE"
	TypeUnsubscribe FrameType = "UNSUBSCRIBE"

	// Outbound frame types.
	TypeMessage    FrameType = "MESSAGE"
	TypeSubscribed FrameType = "SUBSCRIBED"
	TypeConfirm    FrameType = "CONFIRM"
	TypeError      FrameType = "ERROR"
)

// Frame is the envelope for every WebSocket exchange.
type Frame struct {
	Type    FrameType       `json:"type"`
	Topic   string          `json:"topic,omitempty"`
	TempID  string          `json:"tempId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SendPayload is the body of a TypeSend frame.
type SendPayload struct {
	GroupID string `json:"groupId"`
	Content string `json:"content"`
}

// ErrorPayload is the body of a TypeError frame.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const groupTopicPrefix = "group/"

// GroupTopic returns the broadcast topic for a group.
func GroupTopic(groupID string) string {
	return groupTopicPrefix + groupID
}

// GroupIDFromTopic extracts the group id from a group topic.
func GroupIDFromTopic(topic string) (string, error) {
	id := strings.TrimPrefix(topic, groupTopicPrefix)
	if id == "" || id == topic {
		return "", fmt.Errorf("invalid group topic %q", topic)
	}
	return id, nil
}

// newFrame marshals a payload into an outbound frame of the given type.
func newFrame(frameType FrameType, topic string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", frameType, err)
	}
	return json.Marshal(Frame{Type: frameType, Topic: topic, Payload: body})
}
