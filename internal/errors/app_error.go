package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeNetwork         = "NETWORK_ERROR"
	ErrCodeSchema          = "SCHEMA_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// NetworkError is a non-success upstream response or a failed round trip.
// statusCode is 0 when no response was received.
func NetworkError(message string, statusCode int) *AppError {
	return NewAppError(ErrCodeNetwork, message, statusCode)
}

// SchemaError is a decoded body that does not match the required shape.
func SchemaError(message string) *AppError {
	return NewAppError(ErrCodeSchema, message, http.StatusUnprocessableEntity)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

func IsNetworkError(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == ErrCodeNetwork
}

func IsSchemaError(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == ErrCodeSchema
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

// field schema error.
func AddSchemaError(field, reason string) *AppError {
	return SchemaError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
