package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned after the gateway has already torn the
	// session down; callers must not attempt recovery of their own.
	ErrUnauthorized = errors.New("authentication expired")

	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("not found")
)

// APIError represents an error response from the backend
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}
