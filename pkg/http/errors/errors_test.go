package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondNotFound(rec, ErrCodeNotFound, "Resource Not Found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, ErrCodeNotFound, body.Error)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Resource Not Found", body.Message)
}

func TestRespondValidationErrorCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondValidationError(rec, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "difficulty must be at most 5", "difficulty")

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "difficulty", body.Field)
	assert.Equal(t, ErrCodeValidationFailed, body.Error)
}

func TestRespondMethodNotAllowedListsMethods(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondMethodNotAllowed(rec, []string{"GET", "POST"})

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrCodeMethodNotAllowed, body.Error)
	assert.Equal(t, http.StatusMethodNotAllowed, body.Status)
	assert.Equal(t, []interface{}{"GET", "POST"}, body.Details["allowed"])
}
