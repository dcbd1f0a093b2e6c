package req

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnly/internal/pkg/errs"
)

type bindTarget struct {
	Name string `json:"name"`
}

func TestBindJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}`))
	r.Header.Set("Content-Type", "application/json")

	var dst bindTarget
	require.Nil(t, BindJSON(r, &dst))
	assert.Equal(t, "ok", dst.Name)
}

func TestBindJSONRequiresJSONContentType(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}`))
	r.Header.Set("Content-Type", "text/plain")

	err := BindJSON(r, &bindTarget{})
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrUnsupportedMediaType, err.Code)
}

func TestBindJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok","extra":1}`))
	r.Header.Set("Content-Type", "application/json")

	err := BindJSON(r, &bindTarget{})
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrInvalidJSONFormat, err.Code)
}

func TestBindJSONRejectsTrailingContent(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}{"name":"again"}`))
	r.Header.Set("Content-Type", "application/json")

	err := BindJSON(r, &bindTarget{})
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrExtraContentInBody, err.Code)
}
