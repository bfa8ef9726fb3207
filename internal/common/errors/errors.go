// Package errors provides the error taxonomy of the biodata API and its
// mapping onto HTTP responses.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidID            ErrorCode = "INVALID_ID"
	ErrCodeInvalidRequestBody   ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeRecordNotFound       ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeStudentNotFound      ErrorCode = "STUDENT_NOT_FOUND"
	ErrCodeRouteNotFound        ErrorCode = "ROUTE_NOT_FOUND"
	ErrCodeStoreOperationFailed ErrorCode = "STORE_OPERATION_FAILED"
	ErrCodeStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Message is the
// only part ever shown to API callers.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying store or decode error.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status for the error's code.
func (e *StandardError) StatusCode() int {
	return HTTPStatus(e.Code)
}

// NewInvalidIDError is returned when a path identifier fails format validation.
func NewInvalidIDError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidID,
		Message:   "Invalid ID format",
		Details:   fmt.Sprintf("id: %q", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestBodyError is returned when a request body is not a JSON object.
func NewInvalidRequestBodyError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequestBody,
		Message:   "Invalid request body",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRecordNotFoundError is returned when no biodata record matches an id.
func NewRecordNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "BioData not found",
		Details:   fmt.Sprintf("id: %s", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewStudentNotFoundError is returned when no record carries the application number.
func NewStudentNotFoundError(applicationNumber interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeStudentNotFound,
		Message:   "Student record not found",
		Details:   fmt.Sprintf("application_number: %v", applicationNumber),
		Timestamp: time.Now().UTC(),
	}
}

// NewRouteNotFoundError is returned for paths the API does not serve.
func NewRouteNotFoundError(method, path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRouteNotFound,
		Message:   "Not Found",
		Details:   fmt.Sprintf("%s %s", method, path),
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreOperationFailedError wraps any failure reported by the document
// store. Callers always see the same generic message.
func NewStoreOperationFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreOperationFailed,
		Message:   "Internal server error",
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStoreUnavailableError is reported by the readiness probe.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Store unavailable",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError covers failures outside the store, such as recovered panics.
func NewInternalError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

var httpStatusByCode = map[ErrorCode]int{
	ErrCodeInvalidID:            http.StatusBadRequest,
	ErrCodeInvalidRequestBody:   http.StatusBadRequest,
	ErrCodeRecordNotFound:       http.StatusNotFound,
	ErrCodeStudentNotFound:      http.StatusNotFound,
	ErrCodeRouteNotFound:        http.StatusNotFound,
	ErrCodeStoreOperationFailed: http.StatusInternalServerError,
	ErrCodeStoreUnavailable:     http.StatusServiceUnavailable,
	ErrCodeInternal:             http.StatusInternalServerError,
}

// HTTPStatus maps an error code to its response status. Unknown codes are 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidID, ErrCodeInvalidRequestBody:
		return "MALFORMED_INPUT"
	case ErrCodeRecordNotFound, ErrCodeStudentNotFound, ErrCodeRouteNotFound:
		return "NOT_FOUND"
	case ErrCodeStoreOperationFailed, ErrCodeStoreUnavailable:
		return "STORE"
	default:
		return "INTERNAL"
	}
}
