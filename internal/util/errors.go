package util

import (
	"errors"
	"net/http"
)

// Error kinds. Every error returned by the service layer wraps exactly one of them.
var (
	ErrValidation       = errors.New("validation error")
	ErrDuplicate        = errors.New("duplicate error")
	ErrResourceNotFound = errors.New("resource not found")
)

// AppError carries a client-facing message together with its kind.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string) error {
	return &AppError{Kind: ErrValidation, Message: message}
}

func NewDuplicateError(message string) error {
	return &AppError{Kind: ErrDuplicate, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: ErrResourceNotFound, Message: message}
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrResourceNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
