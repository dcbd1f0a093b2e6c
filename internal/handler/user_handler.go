package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"learnly/internal/app/user"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/req"
	"learnly/internal/pkg/resp"
)

// HandleGetCurrentUser returns the signed-in user's own record.
func HandleGetCurrentUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, u)
	}
}

// HandleGetUser returns another user's profile by id.
func HandleGetUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := requireUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Users.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, u)
	}
}

// HandleSearchUsers returns users matching the name/email query filters,
// excluding the caller.
func HandleSearchUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		filter := user.SearchFilter{
			Name:  r.URL.Query().Get("name"),
			Email: r.URL.Query().Get("email"),
		}

		users, err := deps.Users.Search(r.Context(), caller.ID, filter)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, users)
	}
}

// HandleUpdateProfile applies a partial edit to the caller's own profile.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input user.ProfileUpdate
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		updated, err := deps.Users.UpdateProfile(r.Context(), caller.ID, input)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleFollowUser adds the caller to the target user's followers.
func HandleFollowUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		targetID := chi.URLParam(r, "id")
		if targetID == caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrSelfFollow))
			return
		}

		if err := deps.Users.Follow(r.Context(), caller.ID, targetID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleUnfollowUser removes the follow relation in both directions.
func HandleUnfollowUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Users.Unfollow(r.Context(), caller.ID, chi.URLParam(r, "id")); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleListFollowers expands a user's follower ids into full records.
func HandleListFollowers(deps *AppDeps) http.HandlerFunc {
	return listRelation(deps, func(u user.User) []string { return u.Followers })
}

// HandleListFollowing expands a user's following ids into full records.
func HandleListFollowing(deps *AppDeps) http.HandlerFunc {
	return listRelation(deps, func(u user.User) []string { return u.Following })
}

func listRelation(deps *AppDeps, pick func(user.User) []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := requireUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		target, err := deps.Users.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		users, err := deps.Users.ListByIDs(r.Context(), pick(target))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, users)
	}
}

// HandleSavePost adds a post to the caller's saved set.
func HandleSavePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		postID := chi.URLParam(r, "postId")
		if _, err := deps.Posts.GetByID(r.Context(), postID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		if err := deps.Users.SavePost(r.Context(), caller.ID, postID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleUnsavePost removes a post from the caller's saved set.
func HandleUnsavePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Users.UnsavePost(r.Context(), caller.ID, chi.URLParam(r, "postId")); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleListSavedPosts expands the caller's saved post ids into full records.
func HandleListSavedPosts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		posts, err := deps.Posts.ListByIDs(r.Context(), caller.SavedPosts)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, posts)
	}
}

// HandleDeleteAccount removes the caller's account and every reference other
// records hold to it.
func HandleDeleteAccount(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Users.Delete(r.Context(), caller.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		logx.Info("User account deleted", "user_id", caller.ID)
		resp.RespondSuccess(w, r, nil)
	}
}
