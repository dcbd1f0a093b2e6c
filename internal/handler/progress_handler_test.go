package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnly/internal/app/progress"
	"learnly/internal/pkg/errs"
)

type fakeProgressStore struct {
	ProgressStore
	updates map[string]progress.Update
}

func (s *fakeProgressStore) GetByID(_ context.Context, id string) (progress.Update, error) {
	u, ok := s.updates[id]
	if !ok {
		return progress.Update{}, progress.ErrNotFound
	}
	return u, nil
}

func (s *fakeProgressStore) Update(_ context.Context, id string, edit progress.Edit) (progress.Update, error) {
	u, ok := s.updates[id]
	if !ok {
		return progress.Update{}, progress.ErrNotFound
	}
	if edit.Content != nil {
		u.Content = *edit.Content
	}
	if edit.TemplateType != nil {
		u.TemplateType = *edit.TemplateType
	}
	s.updates[id] = u
	return u, nil
}

func TestHandleUpdateProgressEditsOwnUpdate(t *testing.T) {
	store := &fakeProgressStore{updates: map[string]progress.Update{
		"pu1": {ID: "pu1", UserID: "u1", PlanID: "p1", Content: "day one", TemplateType: "daily"},
	}}
	deps := &AppDeps{Users: testUserDirectory(), Progress: store}

	body := []byte(`{"content":"day two"}`)
	r := withURLParam(authedRequest(http.MethodPatch, "/api/progress/pu1", body), "id", "pu1")
	w := httptest.NewRecorder()
	HandleUpdateProgress(deps)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]any)
	assert.Equal(t, "day two", data["content"])
	assert.Equal(t, "daily", data["templateType"], "fields missing from the edit stay as they were")
}

func TestHandleUpdateProgressForbiddenForNonOwner(t *testing.T) {
	store := &fakeProgressStore{updates: map[string]progress.Update{
		"pu1": {ID: "pu1", UserID: "someone-else", PlanID: "p1", Content: "theirs"},
	}}
	deps := &AppDeps{Users: testUserDirectory(), Progress: store}

	body := []byte(`{"content":"mine now"}`)
	r := withURLParam(authedRequest(http.MethodPatch, "/api/progress/pu1", body), "id", "pu1")
	w := httptest.NewRecorder()
	HandleUpdateProgress(deps)(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, errs.ErrForbidden, decodeEnvelope(t, w).Code)
	assert.Equal(t, "theirs", store.updates["pu1"].Content)
}

func TestHandleUpdateProgressRejectsBlankContent(t *testing.T) {
	store := &fakeProgressStore{updates: map[string]progress.Update{
		"pu1": {ID: "pu1", UserID: "u1", PlanID: "p1", Content: "kept"},
	}}
	deps := &AppDeps{Users: testUserDirectory(), Progress: store}

	r := withURLParam(authedRequest(http.MethodPatch, "/api/progress/pu1", []byte(`{"content":"  "}`)), "id", "pu1")
	w := httptest.NewRecorder()
	HandleUpdateProgress(deps)(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.ErrInvalidParams, decodeEnvelope(t, w).Code)
	assert.Equal(t, "kept", store.updates["pu1"].Content)
}
