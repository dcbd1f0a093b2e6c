package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"learnly/internal/app/group"
	"learnly/internal/app/identity"
	"learnly/internal/app/message"
	"learnly/internal/app/user"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/randx"
)

// Directory resolves external identities to durable user records.
type Directory interface {
	GetByIdentity(ctx context.Context, ident identity.External) (user.User, error)
}

// GroupStore is the membership view the router needs.
type GroupStore interface {
	IsMember(ctx context.Context, userID, groupID string) (bool, error)
}

// MessageStore is the durable message log the router writes to.
type MessageStore interface {
	Append(ctx context.Context, m message.Message) error
	ListByGroup(ctx context.Context, groupID string) ([]message.Message, error)
}

// Router accepts chat messages, persists them, and broadcasts them to the
// group topic. Persistence always happens first: a message that was broadcast
// is guaranteed to be in the log, and a failed write broadcasts nothing.
type Router struct {
	hub      *Hub
	users    Directory
	groups   GroupStore
	messages MessageStore
	logger   zerolog.Logger
}

// NewRouter constructs a Router over the given hub and stores.
func NewRouter(hub *Hub, users Directory, groups GroupStore, messages MessageStore) *Router {
	return &Router{
		hub:      hub,
		users:    users,
		groups:   groups,
		messages: messages,
		logger:   logx.Logger().With().Str("component", "Router").Logger(),
	}
}

// Send routes one message: it authenticates the caller, resolves the sender's
// durable record, checks group membership, stamps the authoritative fields,
// persists the message, and only then publishes it to the group topic.
func (r *Router) Send(ctx context.Context, ident *identity.External, groupID, content string) (message.Message, error) {
	if ident == nil || !ident.Valid() {
		return message.Message{}, errs.NewError(errs.ErrUnauthorized)
	}

	content = strings.TrimSpace(content)
	if content == "" || groupID == "" {
		return message.Message{}, errs.NewError(errs.ErrInvalidParams, "groupId and content are required")
	}
	if len(content) > message.MaxContentLength {
		return message.Message{}, errs.NewError(errs.ErrMessageContentTooLong)
	}

	sender, err := r.users.GetByIdentity(ctx, *ident)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// A valid token whose identity has no user record means the account
			// was deleted or the stores disagree. Worth its own log line.
			r.logger.Error().
				Str("provider", string(ident.Provider)).
				Str("subject_id", ident.SubjectID).
				Msg("Authenticated identity has no user record.")
			return message.Message{}, errs.NewError(errs.ErrIdentityNotFound)
		}
		return message.Message{}, err
	}

	member, err := r.groups.IsMember(ctx, sender.ID, groupID)
	if err != nil {
		if errors.Is(err, group.ErrNotFound) {
			return message.Message{}, errs.NewError(errs.ErrGroupNotFound)
		}
		return message.Message{}, err
	}
	if !member {
		return message.Message{}, errs.NewError(errs.ErrForbidden)
	}

	msg := message.Message{
		ID:         randx.NewID(),
		GroupID:    groupID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Content:    content,
		Status:     message.StatusSent,
		SentAt:     time.Now(),
	}

	if err := r.messages.Append(ctx, msg); err != nil {
		r.logger.Error().Err(err).
			Str("group_id", groupID).
			Str("sender_id", sender.ID).
			Msg("Failed to persist message. Nothing broadcast.")
		return message.Message{}, err
	}

	r.broadcast(msg)
	return msg, nil
}

// broadcast publishes a persisted message to its group topic.
func (r *Router) broadcast(msg message.Message) {
	topic := GroupTopic(msg.GroupID)

	frame, err := newFrame(TypeMessage, topic, msg)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to build broadcast frame.")
		return
	}

	delivered := r.hub.Publish(topic, frame)
	r.logger.Debug().
		Str("message_id", msg.ID).
		Str("topic", topic).
		Int("subscribers", delivered).
		Msg("Message broadcast.")
}

// History returns the group's full ordered message log. Only members may read
// a group's history.
func (r *Router) History(ctx context.Context, ident *identity.External, groupID string) ([]message.Message, error) {
	if ident == nil || !ident.Valid() {
		return nil, errs.NewError(errs.ErrUnauthorized)
	}

	reader, err := r.users.GetByIdentity(ctx, *ident)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.NewError(errs.ErrIdentityNotFound)
		}
		return nil, err
	}

	member, err := r.groups.IsMember(ctx, reader.ID, groupID)
	if err != nil {
		if errors.Is(err, group.ErrNotFound) {
			return nil, errs.NewError(errs.ErrGroupNotFound)
		}
		return nil, err
	}
	if !member {
		return nil, errs.NewError(errs.ErrForbidden)
	}

	return r.messages.ListByGroup(ctx, groupID)
}

// Authorize reports whether the identity may subscribe to a group topic.
func (r *Router) Authorize(ctx context.Context, ident *identity.External, groupID string) error {
	if ident == nil || !ident.Valid() {
		return errs.NewError(errs.ErrUnauthorized)
	}

	subscriber, err := r.users.GetByIdentity(ctx, *ident)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return errs.NewError(errs.ErrIdentityNotFound)
		}
		return err
	}

	member, err := r.groups.IsMember(ctx, subscriber.ID, groupID)
	if err != nil {
		if errors.Is(err, group.ErrNotFound) {
			return errs.NewError(errs.ErrGroupNotFound)
		}
		return err
	}
	if !member {
		return errs.NewError(errs.ErrForbidden)
	}
	return nil
}
