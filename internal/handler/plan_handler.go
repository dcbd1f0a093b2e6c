package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"learnly/internal/app/plan"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/req"
	"learnly/internal/pkg/resp"
)

type CreatePlanInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Topics      []plan.Topic `json:"topics"`
	IsPublic    bool         `json:"isPublic"`
}

// HandleCreatePlan creates a learning plan owned by the caller.
func HandleCreatePlan(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CreatePlanInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Title) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "plan title is required"))
			return
		}

		created, err := deps.Plans.Create(r.Context(), plan.LearningPlan{
			UserID:      caller.ID,
			Title:       input.Title,
			Description: input.Description,
			Topics:      input.Topics,
			IsPublic:    input.IsPublic,
		})
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondCreated(w, r, created)
	}
}

// HandleListMyPlans returns the caller's own plans.
func HandleListMyPlans(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		plans, err := deps.Plans.ListByUser(r.Context(), caller.ID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, plans)
	}
}

// HandleListPublicPlans returns every public plan, for discovery and import.
func HandleListPublicPlans(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := requireUser(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		plans, err := deps.Plans.ListPublic(r.Context())
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, plans)
	}
}

// HandleGetPlan returns one plan. Private plans are visible only to their
// owner.
func HandleGetPlan(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		p, err := deps.Plans.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		if !p.IsPublic && p.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		resp.RespondSuccess(w, r, p)
	}
}

// HandleUpdatePlan applies a partial edit to a plan the caller owns.
func HandleUpdatePlan(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing, err := deps.Plans.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if existing.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		var input plan.Update
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		updated, err := deps.Plans.Update(r.Context(), existing.ID, input)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeletePlan removes a plan the caller owns.
func HandleDeletePlan(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing, err := deps.Plans.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if existing.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.Plans.Delete(r.Context(), existing.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleImportPlan copies a public plan into the caller's account. The copy
// starts with all progress reset, so the importer tracks their own completion
// from zero. Importing also adds the caller to the source plan's follower set,
// so the source owner can see who built on their plan.
func HandleImportPlan(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		src, err := deps.Plans.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		if !src.IsPublic && src.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrPlanNotPublic))
			return
		}

		imported, err := deps.Plans.Create(r.Context(), plan.CopyForImport(src, caller.ID))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		if err := deps.Plans.Follow(r.Context(), src.ID, caller.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		logx.Info("Plan imported", "source_plan_id", src.ID, "new_plan_id", imported.ID, "user_id", caller.ID)
		resp.RespondCreated(w, r, imported)
	}
}

// HandleFollowPlan adds the caller to a public plan's follower set.
func HandleFollowPlan(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		p, err := deps.Plans.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if !p.IsPublic && p.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrPlanNotPublic))
			return
		}

		if err := deps.Plans.Follow(r.Context(), p.ID, caller.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleUnfollowPlan removes the caller from a plan's follower set.
func HandleUnfollowPlan(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Plans.Unfollow(r.Context(), chi.URLParam(r, "id"), caller.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
