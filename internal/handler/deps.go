package handler

import (
	"context"

	"learnly/internal/app/chat"
	"learnly/internal/app/comment"
	"learnly/internal/app/group"
	"learnly/internal/app/identity"
	"learnly/internal/app/like"
	"learnly/internal/app/message"
	"learnly/internal/app/plan"
	"learnly/internal/app/post"
	"learnly/internal/app/progress"
	"learnly/internal/app/storage"
	"learnly/internal/app/user"
	"learnly/internal/configs"
	"learnly/internal/pkg/auth/oauth"
)

// UserStore is the user repository surface the handlers use.
type UserStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByIdentity(ctx context.Context, ident identity.External) (user.User, error)
	CreateFromLogin(ctx context.Context, ident identity.External, email, name, picture string) (user.User, error)
	Search(ctx context.Context, excludeID string, filter user.SearchFilter) ([]user.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]user.User, error)
	UpdateProfile(ctx context.Context, id string, update user.ProfileUpdate) (user.User, error)
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	SavePost(ctx context.Context, userID, postID string) error
	UnsavePost(ctx context.Context, userID, postID string) error
	Delete(ctx context.Context, id string) error
}

// GroupStore is the group repository surface the handlers use.
type GroupStore interface {
	Create(ctx context.Context, desc group.Descriptor) (group.Group, error)
	GetByID(ctx context.Context, id string) (group.Group, error)
	Join(ctx context.Context, groupID, userID string) (group.Group, error)
	ListAll(ctx context.Context) ([]group.Group, error)
	IsMember(ctx context.Context, userID, groupID string) (bool, error)
}

// PostStore is the post repository surface the handlers use.
type PostStore interface {
	Create(ctx context.Context, p post.Post) (post.Post, error)
	GetByID(ctx context.Context, id string) (post.Post, error)
	ListAll(ctx context.Context) ([]post.Post, error)
	ListByUser(ctx context.Context, userID string) ([]post.Post, error)
	ListByTag(ctx context.Context, tag string) ([]post.Post, error)
	ListByIDs(ctx context.Context, ids []string) ([]post.Post, error)
	Update(ctx context.Context, id string, update post.Update) (post.Post, error)
	Delete(ctx context.Context, id string) error
}

// CommentStore is the comment repository surface the handlers use.
type CommentStore interface {
	Create(ctx context.Context, postID, userID, content string) (comment.Comment, error)
	GetByID(ctx context.Context, id string) (comment.Comment, error)
	Update(ctx context.Context, id, content string) (comment.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]comment.Comment, error)
	Delete(ctx context.Context, id string) error
}

// LikeStore is the like repository surface the handlers use.
type LikeStore interface {
	Add(ctx context.Context, postID, userID string) (like.Like, error)
	Remove(ctx context.Context, postID, userID string) error
	ListByPost(ctx context.Context, postID string) ([]like.Like, error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
}

// PlanStore is the learning plan repository surface the handlers use.
type PlanStore interface {
	Create(ctx context.Context, p plan.LearningPlan) (plan.LearningPlan, error)
	GetByID(ctx context.Context, id string) (plan.LearningPlan, error)
	ListByUser(ctx context.Context, userID string) ([]plan.LearningPlan, error)
	ListPublic(ctx context.Context) ([]plan.LearningPlan, error)
	Update(ctx context.Context, id string, update plan.Update) (plan.LearningPlan, error)
	Follow(ctx context.Context, planID, userID string) error
	Unfollow(ctx context.Context, planID, userID string) error
	Delete(ctx context.Context, id string) error
}

// ProgressStore is the progress update repository surface the handlers use.
type ProgressStore interface {
	Create(ctx context.Context, u progress.Update) (progress.Update, error)
	GetByID(ctx context.Context, id string) (progress.Update, error)
	Update(ctx context.Context, id string, edit progress.Edit) (progress.Update, error)
	ListByUser(ctx context.Context, userID string) ([]progress.Update, error)
	ListByPlan(ctx context.Context, planID string) ([]progress.Update, error)
	Delete(ctx context.Context, id string) error
}

// ChatRouter is the message routing surface the handlers use.
type ChatRouter interface {
	Send(ctx context.Context, ident *identity.External, groupID, content string) (message.Message, error)
	History(ctx context.Context, ident *identity.External, groupID string) ([]message.Message, error)
	Authorize(ctx context.Context, ident *identity.External, groupID string) error
}

// AppDeps bundles everything the handlers need.
type AppDeps struct {
	Config         *configs.AppConfig
	Hub            *chat.Hub
	Router         ChatRouter
	Users          UserStore
	Groups         GroupStore
	Posts          PostStore
	Comments       CommentStore
	Likes          LikeStore
	Plans          PlanStore
	Progress       ProgressStore
	StorageService storage.StorageService
	Providers      map[identity.Provider]oauth.Provider
}
