package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", NewValidationError("missing fields"), http.StatusBadRequest},
		{"not found", NewNotFoundError("Appointment not found"), http.StatusNotFound},
		{"conflict", NewConflictError("This time slot is already booked"), http.StatusConflict},
		{"conflict reported as bad request", NewConflictError("already reviewed").WithStatus(http.StatusBadRequest), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("Invalid credentials"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("Access denied"), http.StatusForbidden},
		{"upstream", NewUpstreamError("mail failed", errors.New("dial tcp")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("booking: %w", NewNotFoundError("x")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessageHidesInternalDetails(t *testing.T) {
	err := NewInternalError("Failed to create appointment", errors.New("connection reset by peer"))

	assert.Equal(t, "Failed to create appointment", PublicMessage(err))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("connection reset by peer")))
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestWithStatusDoesNotMutateOriginal(t *testing.T) {
	base := NewConflictError("duplicate")
	_ = base.WithStatus(http.StatusBadRequest)

	assert.Equal(t, http.StatusConflict, base.HTTPStatus())
	assert.True(t, IsType(base, ErrorTypeConflict))
	assert.False(t, IsType(base, ErrorTypeNotFound))
}
