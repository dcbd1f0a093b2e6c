package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/req"
	"learnly/internal/pkg/resp"
)

type CreateCommentInput struct {
	Content string `json:"content"`
}

// HandleCreateComment adds a comment to a post.
func HandleCreateComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CreateCommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Content = strings.TrimSpace(input.Content)
		if input.Content == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "comment content is required"))
			return
		}

		postID := chi.URLParam(r, "id")
		if _, err := deps.Posts.GetByID(r.Context(), postID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		c, err := deps.Comments.Create(r.Context(), postID, caller.ID, input.Content)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondCreated(w, r, c)
	}
}

// HandleListComments returns a post's comments, oldest first.
func HandleListComments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := requireUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID := chi.URLParam(r, "id")
		if _, err := deps.Posts.GetByID(r.Context(), postID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		comments, err := deps.Comments.ListByPost(r.Context(), postID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, comments)
	}
}

// HandleUpdateComment replaces a comment's content. Only the comment's author
// may edit it; the post's owner can delete but not rewrite someone's words.
func HandleUpdateComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing, err := deps.Comments.GetByID(r.Context(), chi.URLParam(r, "commentId"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if existing.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		var input CreateCommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Content = strings.TrimSpace(input.Content)
		if input.Content == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "comment content is required"))
			return
		}

		updated, err := deps.Comments.Update(r.Context(), existing.ID, input.Content)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeleteComment removes a comment. The comment's author and the post's
// owner may both delete it.
func HandleDeleteComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		c, err := deps.Comments.GetByID(r.Context(), chi.URLParam(r, "commentId"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		if c.UserID != caller.ID {
			parent, err := deps.Posts.GetByID(r.Context(), c.PostID)
			if err != nil || parent.UserID != caller.ID {
				resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
				return
			}
		}

		if err := deps.Comments.Delete(r.Context(), c.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
