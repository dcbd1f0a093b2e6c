package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorKnownCode(t *testing.T) {
	err := NewError(ErrGroupNotFound)

	require.NotNil(t, err)
	assert.Equal(t, ErrGroupNotFound, err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.NotEmpty(t, err.Message)
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(-12345)

	require.NotNil(t, err)
	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewErrorAppliesDetails(t *testing.T) {
	err := NewError(ErrFileSizeTooLarge, 50)

	require.NotNil(t, err)
	assert.Contains(t, err.Message, "50MB")
}

func TestNewErrorCarriesInvalidParamsDetail(t *testing.T) {
	err := NewError(ErrInvalidParams, "plan title is required")

	require.NotNil(t, err)
	assert.Contains(t, err.Message, "plan title is required")
}

func TestNewErrorDoesNotMutateTemplate(t *testing.T) {
	first := NewError(ErrFileSizeTooLarge, 50)
	second := NewError(ErrFileSizeTooLarge, 10)

	assert.Contains(t, first.Message, "50MB")
	assert.Contains(t, second.Message, "10MB")
}

func TestCustomErrorError(t *testing.T) {
	err := CustomError{Code: 42, Message: "boom", Status: http.StatusTeapot}

	assert.Contains(t, err.Error(), "42")
	assert.Contains(t, err.Error(), "boom")
}
