package services

import "errors"

// Core error taxonomy. Handlers translate these to HTTP status codes;
// nothing in this package retries internally.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrUnauthorized         = errors.New("unauthorized")
)
