package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"learnly/internal/pkg/logx"
)

// Subscriber receives broadcast frames for topics it is subscribed to.
// Deliver must not block; slow receivers drop frames rather than stall the hub.
type Subscriber interface {
	Deliver(frame []byte)
}

// Hub fans broadcast frames out to topic subscribers. It holds only live
// connection state; message durability is the router's job, so a hub restart
// loses subscriptions but never messages.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[Subscriber]struct{}
	logger zerolog.Logger
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[Subscriber]struct{}),
		logger: logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Subscribe adds s to the topic's subscriber set.
func (h *Hub) Subscribe(topic string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[Subscriber]struct{})
		h.topics[topic] = subs
	}
	subs[s] = struct{}{}
}

// Unsubscribe removes s from the topic's subscriber set.
func (h *Hub) Unsubscribe(topic string, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.topics[topic]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Drop removes s from every topic, used when a connection closes.
func (h *Hub) Drop(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic, subs := range h.topics {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Publish delivers a frame to every subscriber of the topic, including the
// sender's own connection if it is subscribed. Delivery is best-effort and
// returns the number of subscribers addressed.
func (h *Hub) Publish(topic string, frame []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs := h.topics[topic]
	for s := range subs {
		s.Deliver(frame)
	}
	return len(subs)
}

// SubscriberCount reports the current number of subscribers on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.topics[topic])
}
