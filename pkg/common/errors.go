package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies application errors for HTTP mapping and logging
type ErrorCode string

const (
	// CodeValidation marks bad input shape or type
	CodeValidation ErrorCode = "validation"
	// CodeNotFound marks a referenced entity that does not exist
	CodeNotFound ErrorCode = "not_found"
	// CodeDuplicate marks a uniqueness violation
	CodeDuplicate ErrorCode = "duplicate"
	// CodeEmpty marks an operation that requires a non-empty collection
	CodeEmpty ErrorCode = "empty"
	// CodeUnauthorized marks failed credential verification
	CodeUnauthorized ErrorCode = "unauthorized"
	// CodeUpstream marks a third-party API or network failure
	CodeUpstream ErrorCode = "upstream"
	// CodeStorage marks a persistence-layer failure
	CodeStorage ErrorCode = "storage"
)

// AppError is the application error type carried across layer boundaries
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewDuplicateError creates a duplicate error with a formatted message
func NewDuplicateError(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeDuplicate, Message: fmt.Sprintf(format, args...)}
}

// NewEmptyError creates an empty-collection error with a formatted message
func NewEmptyError(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeEmpty, Message: fmt.Sprintf(format, args...)}
}

// NewUnauthorizedError creates an invalid-credentials error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewUpstreamError wraps a third-party failure
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Code: CodeUpstream, Message: message, Err: err}
}

// NewStorageError wraps a persistence failure
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: CodeStorage, Message: message, Err: err}
}

// IsCode reports whether err is an AppError with the given code
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an error code to its HTTP status
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeEmpty:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
