package handler

import (
	"errors"
	"net/http"

	"learnly/internal/app/comment"
	"learnly/internal/app/group"
	"learnly/internal/app/identity"
	"learnly/internal/app/like"
	"learnly/internal/app/plan"
	"learnly/internal/app/post"
	"learnly/internal/app/progress"
	"learnly/internal/app/user"
	"learnly/internal/pkg/auth/jwt"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/resp"
)

// requireUser resolves the request's external identity to the durable user
// record. It fails with ErrUnauthorized for anonymous callers and with
// ErrIdentityNotFound when a valid token points at a missing user record.
func requireUser(deps *AppDeps, r *http.Request) (user.User, *errs.CustomError) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return user.User{}, errs.NewError(errs.ErrUnauthorized)
	}

	ident := payload.Identity()
	if !ident.Valid() {
		return user.User{}, errs.NewError(errs.ErrUnauthorized)
	}

	u, err := deps.Users.GetByIdentity(r.Context(), ident)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logx.Warn("Authenticated identity has no user record",
				"provider", string(ident.Provider), "subject_id", ident.SubjectID)
			return user.User{}, errs.NewError(errs.ErrIdentityNotFound)
		}
		logx.Error(err, "Failed to resolve user from identity")
		return user.User{}, errs.NewError(errs.ErrUnknown)
	}

	return u, nil
}

// requestIdentity returns the request's external identity, nil for anonymous
// callers.
func requestIdentity(r *http.Request) *identity.External {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil {
		return nil
	}

	ident := payload.Identity()
	return &ident
}

// respondStoreError maps store sentinel errors onto API error codes and sends
// the response. CustomErrors pass through unchanged.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		resp.RespondError(w, r, customErr)
		return
	}

	switch {
	case errors.Is(err, user.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
	case errors.Is(err, group.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrGroupNotFound))
	case errors.Is(err, post.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrPostNotFound))
	case errors.Is(err, comment.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrCommentNotFound))
	case errors.Is(err, like.ErrAlreadyLiked):
		resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLiked))
	case errors.Is(err, like.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrLikeNotFound))
	case errors.Is(err, plan.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrPlanNotFound))
	case errors.Is(err, progress.ErrNotFound):
		resp.RespondError(w, r, errs.NewError(errs.ErrProgressNotFound))
	default:
		logx.Error(err, "Unhandled store error")
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
	}
}
