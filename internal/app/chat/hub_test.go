package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSubscriber struct {
	mu     sync.Mutex
	frames [][]byte
}

func (s *countingSubscriber) Deliver(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
}

func (s *countingSubscriber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func TestHubPublishReachesOnlyTopicSubscribers(t *testing.T) {
	hub := NewHub()

	a := &countingSubscriber{}
	b := &countingSubscriber{}
	hub.Subscribe("group/1", a)
	hub.Subscribe("group/2", b)

	delivered := hub.Publish("group/1", []byte("x"))

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, a.count())
	assert.Equal(t, 0, b.count())
}

func TestHubSubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()

	a := &countingSubscriber{}
	hub.Subscribe("group/1", a)
	hub.Subscribe("group/1", a)

	assert.Equal(t, 1, hub.SubscriberCount("group/1"))

	hub.Publish("group/1", []byte("x"))
	assert.Equal(t, 1, a.count())
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	a := &countingSubscriber{}
	hub.Subscribe("group/1", a)
	hub.Unsubscribe("group/1", a)

	delivered := hub.Publish("group/1", []byte("x"))

	assert.Equal(t, 0, delivered)
	assert.Equal(t, 0, a.count())
	assert.Equal(t, 0, hub.SubscriberCount("group/1"))
}

func TestHubDropRemovesFromEveryTopic(t *testing.T) {
	hub := NewHub()

	a := &countingSubscriber{}
	hub.Subscribe("group/1", a)
	hub.Subscribe("group/2", a)

	hub.Drop(a)

	assert.Equal(t, 0, hub.Publish("group/1", []byte("x")))
	assert.Equal(t, 0, hub.Publish("group/2", []byte("x")))
}

func TestHubConcurrentPublishAndSubscribe(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			hub.Subscribe(fmt.Sprintf("group/%d", n%4), &countingSubscriber{})
		}(i)
		go func(n int) {
			defer wg.Done()
			hub.Publish(fmt.Sprintf("group/%d", n%4), []byte("x"))
		}(i)
	}
	wg.Wait()

	total := 0
	for i := 0; i < 4; i++ {
		total += hub.SubscriberCount(fmt.Sprintf("group/%d", i))
	}
	assert.Equal(t, 16, total)
}

func TestGroupTopicRoundTrip(t *testing.T) {
	topic := GroupTopic("abc-123")
	assert.Equal(t, "group/abc-123", topic)

	id, err := GroupIDFromTopic(topic)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	_, err = GroupIDFromTopic("group/")
	assert.Error(t, err)

	_, err = GroupIDFromTopic("room/abc")
	assert.Error(t, err)
}
