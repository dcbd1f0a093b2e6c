package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"learnly/internal/pkg/resp"
)

// HandleLikePost records the caller's like on a post. Liking twice fails with
// ErrAlreadyLiked rather than double-counting.
func HandleLikePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID := chi.URLParam(r, "id")
		if _, err := deps.Posts.GetByID(r.Context(), postID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		l, err := deps.Likes.Add(r.Context(), postID, caller.ID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondCreated(w, r, l)
	}
}

// HandleUnlikePost removes the caller's like on a post.
func HandleUnlikePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Likes.Remove(r.Context(), chi.URLParam(r, "id"), caller.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleGetLikes returns a post's like records plus the count and whether the
// caller has liked it.
func HandleGetLikes(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID := chi.URLParam(r, "id")
		if _, err := deps.Posts.GetByID(r.Context(), postID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		likes, err := deps.Likes.ListByPost(r.Context(), postID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		liked, err := deps.Likes.HasLiked(r.Context(), postID, caller.ID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"likes": likes,
			"count": len(likes),
			"liked": liked,
		})
	}
}
