package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnly/internal/app/identity"
	"learnly/internal/app/plan"
	"learnly/internal/app/user"
	"learnly/internal/pkg/errs"
)

type fakePlanStore struct {
	PlanStore
	plans   map[string]plan.LearningPlan
	follows []string
}

func (s *fakePlanStore) Create(_ context.Context, p plan.LearningPlan) (plan.LearningPlan, error) {
	p.ID = fmt.Sprintf("p-%d", len(s.plans)+1)
	s.plans[p.ID] = p
	return p, nil
}

func (s *fakePlanStore) GetByID(_ context.Context, id string) (plan.LearningPlan, error) {
	p, ok := s.plans[id]
	if !ok {
		return plan.LearningPlan{}, plan.ErrNotFound
	}
	return p, nil
}

func (s *fakePlanStore) Follow(_ context.Context, planID, userID string) error {
	p, ok := s.plans[planID]
	if !ok {
		return plan.ErrNotFound
	}
	p.Followers = append(p.Followers, userID)
	s.plans[planID] = p
	s.follows = append(s.follows, planID+":"+userID)
	return nil
}

func testUserDirectory() *fakeUserStore {
	return &fakeUserStore{users: map[string]user.User{
		"google:sub-1": {ID: "u1", Name: "Alice", Provider: identity.ProviderGoogle, ProviderID: "sub-1"},
	}}
}

func TestHandleImportPlanFollowsSource(t *testing.T) {
	store := &fakePlanStore{plans: map[string]plan.LearningPlan{
		"src": {ID: "src", UserID: "owner", Title: "Learn Go", IsPublic: true},
	}}
	deps := &AppDeps{Users: testUserDirectory(), Plans: store}

	r := withURLParam(authedRequest(http.MethodPost, "/api/plans/src/import", nil), "id", "src")
	w := httptest.NewRecorder()
	HandleImportPlan(deps)(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]any)
	assert.Equal(t, "Learn Go (Imported)", data["title"])
	assert.Equal(t, "u1", data["userId"])
	assert.Equal(t, false, data["isPublic"])

	assert.Contains(t, store.follows, "src:u1", "importing must add the importer to the source plan's followers")
	assert.Contains(t, store.plans["src"].Followers, "u1")
}

func TestHandleImportPlanRejectsPrivate(t *testing.T) {
	store := &fakePlanStore{plans: map[string]plan.LearningPlan{
		"src": {ID: "src", UserID: "owner", Title: "Secret", IsPublic: false},
	}}
	deps := &AppDeps{Users: testUserDirectory(), Plans: store}

	r := withURLParam(authedRequest(http.MethodPost, "/api/plans/src/import", nil), "id", "src")
	w := httptest.NewRecorder()
	HandleImportPlan(deps)(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, errs.ErrPlanNotPublic, decodeEnvelope(t, w).Code)
	assert.Empty(t, store.follows)
	assert.Len(t, store.plans, 1, "nothing is created for a rejected import")
}

func TestHandleCreatePlanAcceptsTypedResources(t *testing.T) {
	store := &fakePlanStore{plans: map[string]plan.LearningPlan{}}
	deps := &AppDeps{Users: testUserDirectory(), Plans: store}

	body := []byte(`{
		"title": "Learn Go",
		"topics": [
			{"title": "Basics", "resources": [{"title": "Tour", "url": "https://go.dev/tour", "type": "video"}]}
		]
	}`)
	w := httptest.NewRecorder()
	HandleCreatePlan(deps)(w, authedRequest(http.MethodPost, "/api/plans", body))

	require.Equal(t, http.StatusCreated, w.Code, "typed resources must bind, not be rejected as unknown fields")
	data := decodeEnvelope(t, w).Data.(map[string]any)
	topics := data["topics"].([]any)
	require.Len(t, topics, 1)
	resources := topics[0].(map[string]any)["resources"].([]any)
	require.Len(t, resources, 1)
	assert.Equal(t, "video", resources[0].(map[string]any)["type"])
}
