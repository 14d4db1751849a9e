package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error with the HTTP status it should be rendered with
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError names the offending input, e.g. "items[2].itemName"
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

var (
	ErrUnauthorized        = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrInvalidCredentials  = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrIdentityUnavailable = &AppError{Code: http.StatusServiceUnavailable, Message: "Identity provider is unreachable"}
)

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap keeps err reachable through errors.Is and errors.As
func Wrap(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, cause: err}
}

// NewUpstreamError reports a failed call to the inventory API or its fallback
func NewUpstreamError(message string, err error) *AppError {
	return Wrap(http.StatusBadGateway, message, err)
}

func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: resource + " not found"}
}

// NewConflictError is returned when an operation does not fit the current state
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// FieldErrors collects validation failures in input order
type FieldErrors []FieldError

func (f *FieldErrors) Add(field, format string, args ...interface{}) {
	*f = append(*f, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err is nil when nothing was collected
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return NewValidationError(f)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsValidation reports whether err carries field validation errors
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusUnprocessableEntity && len(appErr.Errors) > 0
}

// GetAppError maps any error onto an AppError, defaulting to 500
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		cause:   err,
	}
}
