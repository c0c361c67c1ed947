package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecotrack-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body["count"])
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "bad weight")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bad weight", body["error"])
}

func TestServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", services.ErrInvalidInput, http.StatusBadRequest},
		{"invalid configuration", services.ErrInvalidConfiguration, http.StatusBadRequest},
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"unauthorized", services.ErrUnauthorized, http.StatusForbidden},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("claim: %w", services.ErrConflict), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ServiceError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestServiceErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	ServiceError(rec, fmt.Errorf("pq: connection refused"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
}
