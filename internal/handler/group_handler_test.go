package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnly/internal/app/group"
	"learnly/internal/app/identity"
	"learnly/internal/app/user"
	"learnly/internal/pkg/auth/jwt"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/randx"
	"learnly/internal/pkg/resp"
)

type fakeUserStore struct {
	UserStore
	users map[string]user.User
}

func (s *fakeUserStore) GetByIdentity(_ context.Context, ident identity.External) (user.User, error) {
	u, ok := s.users[ident.String()]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type fakeGroupStore struct {
	GroupStore
	groups map[string]group.Group
}

func (s *fakeGroupStore) Create(_ context.Context, desc group.Descriptor) (group.Group, error) {
	members := desc.Members
	if len(members) == 0 {
		members = []string{desc.CreatedBy}
	} else {
		found := false
		for _, m := range members {
			if m == desc.CreatedBy {
				found = true
			}
		}
		if !found {
			members = append(members, desc.CreatedBy)
		}
	}

	g := group.Group{
		ID:        randx.NewID(),
		Name:      desc.Name,
		CreatedBy: desc.CreatedBy,
		CreatedAt: time.Now(),
		Members:   members,
	}
	s.groups[g.ID] = g
	return g, nil
}

func (s *fakeGroupStore) GetByID(_ context.Context, id string) (group.Group, error) {
	g, ok := s.groups[id]
	if !ok {
		return group.Group{}, group.ErrNotFound
	}
	return g, nil
}

func (s *fakeGroupStore) Join(_ context.Context, groupID, userID string) (group.Group, error) {
	g, ok := s.groups[groupID]
	if !ok {
		return group.Group{}, group.ErrNotFound
	}
	member := false
	for _, m := range g.Members {
		if m == userID {
			member = true
		}
	}
	if !member {
		g.Members = append(g.Members, userID)
		s.groups[groupID] = g
	}
	return g, nil
}

func (s *fakeGroupStore) ListAll(_ context.Context) ([]group.Group, error) {
	out := []group.Group{}
	for _, g := range s.groups {
		out = append(out, g)
	}
	return out, nil
}

func testDeps() (*AppDeps, *fakeGroupStore) {
	groups := &fakeGroupStore{groups: map[string]group.Group{}}
	users := &fakeUserStore{users: map[string]user.User{
		"google:sub-1": {ID: "u1", Name: "Alice", Provider: identity.ProviderGoogle, ProviderID: "sub-1"},
	}}
	return &AppDeps{Users: users, Groups: groups}, groups
}

// authedRequest builds a request carrying the session payload, the way the
// identity extractor middleware would.
func authedRequest(method, target string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}

	payload := &jwt.Payload{UserID: "u1", Provider: "google", SubjectID: "sub-1", Name: "Alice"}
	return r.WithContext(context.WithValue(r.Context(), jwt.ContextAuthPayloadKey, payload))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) resp.JSONResponse {
	t.Helper()
	var envelope resp.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestHandleCreateGroupDefaultsMembersToCreator(t *testing.T) {
	deps, _ := testDeps()

	body := []byte(`{"name":"Go Study Group"}`)
	w := httptest.NewRecorder()
	HandleCreateGroup(deps)(w, authedRequest(http.MethodPost, "/api/groups", body))

	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	require.Equal(t, 0, envelope.Code)

	data := envelope.Data.(map[string]any)
	assert.Equal(t, "Go Study Group", data["name"])
	assert.Equal(t, "u1", data["createdBy"])
	assert.Equal(t, []any{"u1"}, data["members"])
	assert.Equal(t, true, data["isMember"])
}

func TestHandleCreateGroupAlwaysIncludesCreator(t *testing.T) {
	deps, _ := testDeps()

	body := []byte(`{"name":"Group","members":["u2","u3"]}`)
	w := httptest.NewRecorder()
	HandleCreateGroup(deps)(w, authedRequest(http.MethodPost, "/api/groups", body))

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]any)
	assert.ElementsMatch(t, []any{"u1", "u2", "u3"}, data["members"])
}

func TestHandleCreateGroupRequiresName(t *testing.T) {
	deps, _ := testDeps()

	w := httptest.NewRecorder()
	HandleCreateGroup(deps)(w, authedRequest(http.MethodPost, "/api/groups", []byte(`{"name":"  "}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.ErrInvalidParams, decodeEnvelope(t, w).Code)
}

func TestHandleCreateGroupRejectsAnonymous(t *testing.T) {
	deps, _ := testDeps()

	r := httptest.NewRequest(http.MethodPost, "/api/groups", bytes.NewReader([]byte(`{"name":"x"}`)))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	HandleCreateGroup(deps)(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errs.ErrUnauthorized, decodeEnvelope(t, w).Code)
}

func TestHandleJoinGroupIsIdempotent(t *testing.T) {
	deps, store := testDeps()
	store.groups["g1"] = group.Group{ID: "g1", Name: "Group", Members: []string{"owner"}}

	for i := 0; i < 2; i++ {
		r := withURLParam(authedRequest(http.MethodPost, "/api/groups/g1/join", nil), "id", "g1")
		w := httptest.NewRecorder()
		HandleJoinGroup(deps)(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]any)
		assert.ElementsMatch(t, []any{"owner", "u1"}, data["members"], "joining twice must not duplicate membership")
		assert.Equal(t, true, data["isMember"])
	}
}

func TestHandleJoinGroupMissing(t *testing.T) {
	deps, _ := testDeps()

	r := withURLParam(authedRequest(http.MethodPost, "/api/groups/nope/join", nil), "id", "nope")
	w := httptest.NewRecorder()
	HandleJoinGroup(deps)(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errs.ErrGroupNotFound, decodeEnvelope(t, w).Code)
}

func TestHandleListGroupsFlagsMembership(t *testing.T) {
	deps, store := testDeps()
	store.groups["g1"] = group.Group{ID: "g1", Name: "Mine", Members: []string{"u1", "u2"}}
	store.groups["g2"] = group.Group{ID: "g2", Name: "Theirs", Members: []string{"u2"}}

	w := httptest.NewRecorder()
	HandleListGroups(deps)(w, authedRequest(http.MethodGet, "/api/groups", nil))

	require.Equal(t, http.StatusOK, w.Code)
	groups := decodeEnvelope(t, w).Data.([]any)
	require.Len(t, groups, 2, "non-members still see every group")

	flags := map[string]bool{}
	for _, item := range groups {
		g := item.(map[string]any)
		flags[g["name"].(string)] = g["isMember"].(bool)
	}
	assert.True(t, flags["Mine"])
	assert.False(t, flags["Theirs"])
}
