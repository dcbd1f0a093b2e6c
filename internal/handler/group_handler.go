package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"learnly/internal/app/group"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/req"
	"learnly/internal/pkg/resp"
)

type CreateGroupInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Members       []string `json:"members"`
	RelatedPlanID string   `json:"relatedPlanId"`
}

// HandleCreateGroup creates a chat group owned by the caller. The caller is
// always part of the member set, whether or not the request listed them.
func HandleCreateGroup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CreateGroupInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "group name is required"))
			return
		}

		g, err := deps.Groups.Create(r.Context(), group.Descriptor{
			Name:          input.Name,
			Description:   input.Description,
			CreatedBy:     caller.ID,
			Members:       input.Members,
			RelatedPlanID: input.RelatedPlanID,
		})
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		logx.Info("Group created", "group_id", g.ID, "created_by", caller.ID)

		g.IsMember = true
		resp.RespondCreated(w, r, g)
	}
}

// HandleListGroups returns every group, each flagged with whether the caller
// is a member. Non-members see groups too, so they can discover and join them.
func HandleListGroups(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		groups, err := deps.Groups.ListAll(r.Context())
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		for i := range groups {
			groups[i].IsMember = memberOf(groups[i].Members, caller.ID)
		}

		resp.RespondSuccess(w, r, groups)
	}
}

// HandleGetGroup returns one group by id.
func HandleGetGroup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		g, err := deps.Groups.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		g.IsMember = memberOf(g.Members, caller.ID)
		resp.RespondSuccess(w, r, g)
	}
}

// HandleJoinGroup adds the caller to the group's member set. Joining a group
// twice is a no-op that still succeeds with the current membership.
func HandleJoinGroup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, customErr := requireUser(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		g, err := deps.Groups.Join(r.Context(), chi.URLParam(r, "id"), caller.ID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		logx.Info("User joined group", "group_id", g.ID, "user_id", caller.ID)

		g.IsMember = true
		resp.RespondSuccess(w, r, g)
	}
}

// HandleGroupMessages returns the group's ordered message history. The router
// enforces that only members can read it.
func HandleGroupMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := deps.Router.History(r.Context(), requestIdentity(r), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, messages)
	}
}

// HandleSendGroupMessage routes a message over HTTP, for clients without an
// open WebSocket. It persists and broadcasts exactly like a WebSocket send.
func HandleSendGroupMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			Content string `json:"content"`
		}
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		msg, err := deps.Router.Send(r.Context(), requestIdentity(r), chi.URLParam(r, "id"), input.Content)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}

		resp.RespondCreated(w, r, msg)
	}
}

func memberOf(members []string, userID string) bool {
	for _, m := range members {
		if m == userID {
			return true
		}
	}
	return false
}
