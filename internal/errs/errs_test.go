package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("x").Status)
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("x").Code)

	ise := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, ise.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", ise.Code)
	assert.Equal(t, "Internal server error", ise.Message)
}

func TestIsMatchesWrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewNotFoundError("Note not found"))
	assert.True(t, errors.Is(err, &HTTPError{}))

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusNotFound, he.Status)

	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}

func TestJSONShape(t *testing.T) {
	b, err := json.Marshal(NewBadRequestError("Validation failed", []FieldError{{Field: "tags", Error: "too many"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"code": "BAD_REQUEST",
		"error": "Validation failed",
		"errors": [{"field": "tags", "error": "too many"}]
	}`, string(b))

	b, err = json.Marshal(NewNotFoundError("Note not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code": "NOT_FOUND", "error": "Note not found"}`, string(b))
}
