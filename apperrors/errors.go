package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of an application error
type ErrorType string

const (
	// ErrorTypeValidation indicates missing or malformed input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound indicates a referenced entity does not exist
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeConflict indicates a clash with existing data (double booking, duplicate email or review)
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeUnauthorized indicates missing or invalid credentials
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeForbidden indicates an authenticated caller without access
	ErrorTypeForbidden ErrorType = "FORBIDDEN"

	// ErrorTypeUpstream indicates a failure of an external provider (mail, sms, image host)
	ErrorTypeUpstream ErrorType = "UPSTREAM"

	// ErrorTypeInternal indicates an unexpected failure
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// ErrDuplicateKey is returned by repositories when a unique index rejects a write
var ErrDuplicateKey = errors.New("duplicate key")

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	// Status overrides the default HTTP status of Type when non-zero
	Status int
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithStatus returns a copy of the error reported with the given HTTP status
func (e *AppError) WithStatus(status int) *AppError {
	cp := *e
	cp.Status = status
	return &cp
}

// HTTPStatus returns the HTTP status code for the error
func (e *AppError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{Type: ErrorTypeForbidden, Message: message}
}

// NewUpstreamError creates a new external provider error
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeUpstream, Message: message, Err: err}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// HTTPStatus maps any error to an HTTP status. Errors outside the taxonomy are internal.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show to clients
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInternal, ErrorTypeUpstream:
			if appErr.Message != "" {
				return appErr.Message
			}
			return "Internal server error"
		default:
			return appErr.Message
		}
	}
	return "Internal server error"
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
