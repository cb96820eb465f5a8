package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of application errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeExternal     ErrorType = "external"
	ErrorTypeAuthExchange ErrorType = "auth_exchange"
	ErrorTypeNoCredential ErrorType = "no_credential"
	ErrorTypeAggregation  ErrorType = "aggregation"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code"`
	Internal   error                  `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// NewAuthExchangeError indicates Strava rejected a token exchange or refresh,
// or the exchange request could not complete at all.
func NewAuthExchangeError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthExchange,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// NewNoCredentialError indicates no usable Strava credential exists. Callers
// recover by serving the sample dataset, so this never surfaces to the end
// user as a hard failure.
func NewNoCredentialError() *AppError {
	return &AppError{
		Type:       ErrorTypeNoCredential,
		Message:    "No usable Strava credential",
		StatusCode: http.StatusUnauthorized,
	}
}

// NewAggregationError indicates the activity pipeline failed outside the
// per-activity recovery boundaries, e.g. the listing call itself.
func NewAggregationError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeAggregation,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// IsType reports whether err is an AppError of the given type anywhere in its
// chain.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNoCredential reports whether err means no usable credential exists.
func IsNoCredential(err error) bool {
	return IsType(err, ErrorTypeNoCredential)
}
