package chat

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnly/internal/app/group"
	"learnly/internal/app/identity"
	"learnly/internal/app/message"
	"learnly/internal/app/user"
	"learnly/internal/pkg/errs"
)

type fakeDirectory struct {
	users map[string]user.User
}

func (d *fakeDirectory) GetByIdentity(_ context.Context, ident identity.External) (user.User, error) {
	u, ok := d.users[ident.String()]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type fakeGroups struct {
	members map[string][]string
}

func (g *fakeGroups) IsMember(_ context.Context, userID, groupID string) (bool, error) {
	members, ok := g.members[groupID]
	if !ok {
		return false, group.ErrNotFound
	}
	for _, m := range members {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeMessages struct {
	appended  []message.Message
	appendErr error
}

func (m *fakeMessages) Append(_ context.Context, msg message.Message) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, msg)
	return nil
}

func (m *fakeMessages) ListByGroup(_ context.Context, groupID string) ([]message.Message, error) {
	out := []message.Message{}
	for _, msg := range m.appended {
		if msg.GroupID == groupID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// recordingSubscriber captures delivered frames and, at delivery time, how
// many messages the store already held.
type recordingSubscriber struct {
	frames           [][]byte
	persistedAtSend  []int
	observedMessages *fakeMessages
}

func (s *recordingSubscriber) Deliver(frame []byte) {
	s.frames = append(s.frames, frame)
	if s.observedMessages != nil {
		s.persistedAtSend = append(s.persistedAtSend, len(s.observedMessages.appended))
	}
}

func newTestRouter(messages *fakeMessages) (*Router, *Hub) {
	directory := &fakeDirectory{users: map[string]user.User{
		"google:sub-1": {ID: "u1", Name: "Alice", Provider: identity.ProviderGoogle, ProviderID: "sub-1"},
		"github:77":    {ID: "u2", Name: "Bob", Provider: identity.ProviderGitHub, ProviderID: "77"},
	}}
	groups := &fakeGroups{members: map[string][]string{
		"g1": {"u1", "u2"},
		"g2": {"u2"},
	}}

	hub := NewHub()
	return NewRouter(hub, directory, groups, messages), hub
}

func ident(p identity.Provider, sub string) *identity.External {
	return &identity.External{Provider: p, SubjectID: sub}
}

func TestSendRejectsUnauthenticated(t *testing.T) {
	messages := &fakeMessages{}
	router, hub := newTestRouter(messages)

	sub := &recordingSubscriber{}
	hub.Subscribe(GroupTopic("g1"), sub)

	cases := []*identity.External{
		nil,
		{},
		{Provider: "facebook", SubjectID: "x"},
		{Provider: identity.ProviderGoogle},
	}

	for _, id := range cases {
		_, err := router.Send(context.Background(), id, "g1", "hello")
		require.Error(t, err)

		var customErr *errs.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, errs.ErrUnauthorized, customErr.Code)
	}

	assert.Empty(t, messages.appended, "nothing should be persisted")
	assert.Empty(t, sub.frames, "nothing should be broadcast")
}

func TestSendRejectsUnknownIdentity(t *testing.T) {
	messages := &fakeMessages{}
	router, hub := newTestRouter(messages)

	sub := &recordingSubscriber{}
	hub.Subscribe(GroupTopic("g1"), sub)

	_, err := router.Send(context.Background(), ident(identity.ProviderGoogle, "ghost"), "g1", "hello")

	var customErr *errs.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrIdentityNotFound, customErr.Code)
	assert.Empty(t, messages.appended)
	assert.Empty(t, sub.frames)
}

func TestSendValidatesContent(t *testing.T) {
	messages := &fakeMessages{}
	router, _ := newTestRouter(messages)
	id := ident(identity.ProviderGoogle, "sub-1")

	_, err := router.Send(context.Background(), id, "g1", "   ")
	var customErr *errs.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrInvalidParams, customErr.Code)

	long := make([]byte, message.MaxContentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = router.Send(context.Background(), id, "g1", string(long))
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrMessageContentTooLong, customErr.Code)

	assert.Empty(t, messages.appended)
}

func TestSendRejectsMissingGroup(t *testing.T) {
	router, _ := newTestRouter(&fakeMessages{})

	_, err := router.Send(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "nope", "hello")

	var customErr *errs.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrGroupNotFound, customErr.Code)
}

func TestSendRejectsNonMember(t *testing.T) {
	messages := &fakeMessages{}
	router, _ := newTestRouter(messages)

	// Alice is not a member of g2.
	_, err := router.Send(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g2", "hello")

	var customErr *errs.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrForbidden, customErr.Code)
	assert.Empty(t, messages.appended)
}

func TestSendStampsAuthoritativeFields(t *testing.T) {
	messages := &fakeMessages{}
	router, _ := newTestRouter(messages)

	before := time.Now()
	msg, err := router.Send(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g1", "  hello world  ")
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "g1", msg.GroupID)
	assert.Equal(t, "u1", msg.SenderID, "sender id must come from the directory, not the client")
	assert.Equal(t, "Alice", msg.SenderName)
	assert.Equal(t, "hello world", msg.Content, "content should be trimmed")
	assert.Equal(t, message.StatusSent, msg.Status)
	assert.False(t, msg.SentAt.Before(before))

	require.Len(t, messages.appended, 1)
	assert.Equal(t, msg, messages.appended[0])
}

func TestSendBroadcastsAfterPersist(t *testing.T) {
	messages := &fakeMessages{}
	router, hub := newTestRouter(messages)

	sub := &recordingSubscriber{observedMessages: messages}
	hub.Subscribe(GroupTopic("g1"), sub)

	msg, err := router.Send(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g1", "hello")
	require.NoError(t, err)

	require.Len(t, sub.frames, 1)
	require.Len(t, sub.persistedAtSend, 1)
	assert.Equal(t, 1, sub.persistedAtSend[0], "message must be persisted before the broadcast goes out")

	var frame Frame
	require.NoError(t, json.Unmarshal(sub.frames[0], &frame))
	assert.Equal(t, TypeMessage, frame.Type)
	assert.Equal(t, GroupTopic("g1"), frame.Topic)

	var delivered message.Message
	require.NoError(t, json.Unmarshal(frame.Payload, &delivered))
	assert.Equal(t, msg.ID, delivered.ID)
	assert.Equal(t, "hello", delivered.Content)
}

func TestSendDeliversToSenderSubscription(t *testing.T) {
	messages := &fakeMessages{}
	router, hub := newTestRouter(messages)

	sender := &recordingSubscriber{}
	other := &recordingSubscriber{}
	hub.Subscribe(GroupTopic("g1"), sender)
	hub.Subscribe(GroupTopic("g1"), other)

	_, err := router.Send(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g1", "hello")
	require.NoError(t, err)

	assert.Len(t, sender.frames, 1, "the sender's own subscription receives the message too")
	assert.Len(t, other.frames, 1)
}

func TestSendPersistFailureBroadcastsNothing(t *testing.T) {
	messages := &fakeMessages{appendErr: errors.New("disk on fire")}
	router, hub := newTestRouter(messages)

	sub := &recordingSubscriber{}
	hub.Subscribe(GroupTopic("g1"), sub)

	_, err := router.Send(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g1", "hello")
	require.Error(t, err)

	assert.Empty(t, sub.frames, "a failed write must broadcast nothing")
}

func TestHistoryRequiresMembership(t *testing.T) {
	messages := &fakeMessages{}
	router, _ := newTestRouter(messages)

	_, err := router.Send(context.Background(), ident(identity.ProviderGitHub, "77"), "g2", "first")
	require.NoError(t, err)

	// Bob is a member of g2.
	history, err := router.History(context.Background(), ident(identity.ProviderGitHub, "77"), "g2")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "first", history[0].Content)

	// Alice is not.
	_, err = router.History(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g2")
	var customErr *errs.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrForbidden, customErr.Code)

	// Anonymous callers get nothing.
	_, err = router.History(context.Background(), nil, "g2")
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrUnauthorized, customErr.Code)
}

func TestAuthorize(t *testing.T) {
	router, _ := newTestRouter(&fakeMessages{})

	require.NoError(t, router.Authorize(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g1"))

	var customErr *errs.CustomError

	err := router.Authorize(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "g2")
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrForbidden, customErr.Code)

	err = router.Authorize(context.Background(), nil, "g1")
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrUnauthorized, customErr.Code)

	err = router.Authorize(context.Background(), ident(identity.ProviderGoogle, "sub-1"), "missing")
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errs.ErrGroupNotFound, customErr.Code)
}
