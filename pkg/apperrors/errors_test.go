package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := InternalError(cause)

	assert.True(t, Is(appErr, cause))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
}

func TestAppError_MarshalHidesInternalError(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	appErr := Wrap(cause, CodeDatabaseError, "question", "Failed to load question", http.StatusInternalServerError)

	data, err := json.Marshal(appErr)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "deadlock")
	assert.Contains(t, string(data), "Failed to load question")
}

func TestFactories_HTTPCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrNotFound(nil, "question", "Question not found").HTTPCode)
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("Admins cannot be banned").HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidStatus("application", "Application already reviewed").HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("Invalid token").HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ValidationError(map[string]string{"rating": "out of range"}).HTTPCode)
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(NewBadRequestError("bad"))
	assert.True(t, ok)
	assert.Equal(t, CodeValidationFailed, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
