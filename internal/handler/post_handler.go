package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"learnly/internal/app/post"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/req"
	"learnly/internal/pkg/resp"
)

type CreatePostInput struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	MediaURLs []string `json:"mediaUrls"`
	FileTypes []string `json:"fileTypes"`
	Tags      []string `json:"tags"`
}

// HandleCreatePost creates a post owned by the caller.
func HandleCreatePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CreatePostInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Title) == "" && strings.TrimSpace(input.Content) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "post needs a title or content"))
			return
		}

		created, err := deps.Posts.Create(r.Context(), post.Post{
			UserID:    caller.ID,
			Title:     input.Title,
			Content:   input.Content,
			MediaURLs: input.MediaURLs,
			FileTypes: input.FileTypes,
			Tags:      input.Tags,
		})
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondCreated(w, r, created)
	}
}

// HandleListPosts returns the feed, optionally narrowed to one author
// (?user=<id>) or one tag (?tag=<tag>).
func HandleListPosts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := requireUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var (
			posts []post.Post
			err   error
		)

		switch {
		case r.URL.Query().Get("user") != "":
			posts, err = deps.Posts.ListByUser(r.Context(), r.URL.Query().Get("user"))
		case r.URL.Query().Get("tag") != "":
			posts, err = deps.Posts.ListByTag(r.Context(), r.URL.Query().Get("tag"))
		default:
			posts, err = deps.Posts.ListAll(r.Context())
		}
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, posts)
	}
}

// HandleGetPost returns one post by id.
func HandleGetPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := requireUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		p, err := deps.Posts.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, p)
	}
}

// HandleUpdatePost applies a partial edit to a post the caller owns.
func HandleUpdatePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing, err := deps.Posts.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if existing.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		var input post.Update
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		updated, err := deps.Posts.Update(r.Context(), existing.ID, input)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeletePost removes a post the caller owns.
func HandleDeletePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing, err := deps.Posts.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if existing.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.Posts.Delete(r.Context(), existing.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
