package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"ecotrack-backend/internal/services"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// ServiceError maps the core error taxonomy onto HTTP status codes.
// Unrecognized errors become a generic 500 so internals don't leak.
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidConfiguration):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		Error(w, http.StatusForbidden, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
