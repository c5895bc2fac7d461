package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("row not found")
	appErr := NewNotFoundError(cause, "Course not found")

	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "Course not found: row not found", appErr.Error())
	assert.Equal(t, cause, errors.Unwrap(appErr))

	noCause := NewConflictError(nil, "Already enrolled")
	assert.Equal(t, "Already enrolled", noCause.Error())
}

func TestGetAppErrorUnwrapsWrappedErrors(t *testing.T) {
	appErr := NewForbiddenError(nil, "Not your enrollment")
	wrapped := fmt.Errorf("update status: %w", appErr)

	got, ok := GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, got.StatusCode)

	_, ok = GetAppError(errors.New("plain failure"))
	assert.False(t, ok)
}
