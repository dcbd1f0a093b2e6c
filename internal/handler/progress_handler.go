package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"learnly/internal/app/plan"
	"learnly/internal/app/progress"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/req"
	"learnly/internal/pkg/resp"
)

type CreateProgressInput struct {
	PlanID       string `json:"planId"`
	Content      string `json:"content"`
	TemplateType string `json:"templateType"`
}

// HandleCreateProgress records a progress update against one of the caller's
// plans.
func HandleCreateProgress(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CreateProgressInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Content = strings.TrimSpace(input.Content)
		if input.Content == "" || input.PlanID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "planId and content are required"))
			return
		}

		p, err := deps.Plans.GetByID(r.Context(), input.PlanID)
		if err != nil {
			if errors.Is(err, plan.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPlanNotFound))
				return
			}
			respondStoreError(w, r, err)
			return
		}
		if p.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		created, err := deps.Progress.Create(r.Context(), progress.Update{
			UserID:       caller.ID,
			PlanID:       input.PlanID,
			Content:      input.Content,
			TemplateType: input.TemplateType,
		})
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondCreated(w, r, created)
	}
}

// HandleListProgress returns progress updates, either the caller's own or,
// with ?plan=<id>, those of one plan.
func HandleListProgress(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		planID := r.URL.Query().Get("plan")
		if planID == "" {
			updates, err := deps.Progress.ListByUser(r.Context(), caller.ID)
			if err != nil {
				respondStoreError(w, r, err)
				return
			}
			resp.RespondSuccess(w, r, updates)
			return
		}

		p, err := deps.Plans.GetByID(r.Context(), planID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if !p.IsPublic && p.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		updates, err := deps.Progress.ListByPlan(r.Context(), planID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, updates)
	}
}

// HandleUpdateProgress applies a partial edit to a progress update the caller
// owns.
func HandleUpdateProgress(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing, err := deps.Progress.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if existing.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		var input progress.Edit
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Content != nil {
			trimmed := strings.TrimSpace(*input.Content)
			if trimmed == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "progress content cannot be empty"))
				return
			}
			input.Content = &trimmed
		}

		updated, err := deps.Progress.Update(r.Context(), existing.ID, input)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, updated)
	}
}

// HandleDeleteProgress removes a progress update the caller owns.
func HandleDeleteProgress(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		existing, err := deps.Progress.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		if existing.UserID != caller.ID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		if err := deps.Progress.Delete(r.Context(), existing.ID); err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
