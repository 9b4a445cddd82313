package errors

import (
	"errors"
	"fmt"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusConflict            = 409
	StatusRequestTimeout      = 408
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

// Error taxonomy. Storage and notification failures are kept distinct so that
// callers can isolate best-effort side effects from transactional outcomes.
const (
	ErrorTypeInvalidRequest   = "INVALID_REQUEST"
	ErrorTypeNotFound         = "NOT_FOUND"
	ErrorTypeUnauthorized     = "UNAUTHORIZED"
	ErrorTypeForbidden        = "FORBIDDEN"
	ErrorTypeConflict         = "CONFLICT"
	ErrorTypeStorage          = "STORAGE_ERROR"
	ErrorTypeNotification     = "NOTIFICATION_ERROR"
	ErrorTypeInternal         = "INTERNAL_SERVER_ERROR"
	ErrorTypeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrorTypeRequestTimeout   = "REQUEST_TIMEOUT"
	ErrorTypeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrorTypeUnknown          = "UNKNOWN_ERROR"
)

type AppError struct {
	Type    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewUnauthorizedError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUnauthorized, message, err)
}

func NewForbiddenError(message string, err error) *AppError {
	return NewAppError(ErrorTypeForbidden, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func NewStorageError(message string, err error) *AppError {
	return NewAppError(ErrorTypeStorage, message, err)
}

func NewNotificationError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotification, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternal, message, err)
}

func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	return ErrorTypeUnknown
}

// IsType reports whether err carries the given application error type.
func IsType(err error, errType string) bool {
	return GetErrorType(err) == errType
}
