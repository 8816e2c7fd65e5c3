// Package errors provides standardized domain errors with codes for the Loyer API.
//
// Usage:
//
//	// In the pipeline - return typed errors
//	if _, ok := labels[name]; !ok {
//	    return errors.UnknownCategoryf("unknown neighborhood %q", name)
//	}
//
//	// At the request boundary - check with errors.Is
//	if errors.Is(err, errors.ErrUnknownCategory) {
//	    response.Error(w, http.StatusUnprocessableEntity, err.Error(), logger)
//	    return
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeMissingParameter:
//	        response.BadRequest(w, domainErr.Message, logger)
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeUnknownCategory     Code = "UNKNOWN_CATEGORY"
	CodeSchemaMismatch      Code = "SCHEMA_MISMATCH"
	CodeInvalidQuantity     Code = "INVALID_QUANTITY"
	CodeMissingParameter    Code = "MISSING_PARAMETER"
	CodeArtifactLoadFailure Code = "ARTIFACT_LOAD_FAILURE"
	CodeValidation          Code = "VALIDATION"
	CodeNotFound            Code = "NOT_FOUND"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeInternal            Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeMissingParameter, CodeValidation:
		return http.StatusBadRequest
	case CodeUnknownCategory, CodeInvalidQuantity:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeArtifactLoadFailure:
		return http.StatusServiceUnavailable
	default:
		// SchemaMismatch is an internal defect, not a client error.
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrUnknownCategory     = &Error{Code: CodeUnknownCategory, Message: "unknown category"}
	ErrSchemaMismatch      = &Error{Code: CodeSchemaMismatch, Message: "feature schema mismatch"}
	ErrInvalidQuantity     = &Error{Code: CodeInvalidQuantity, Message: "invalid quantity"}
	ErrMissingParameter    = &Error{Code: CodeMissingParameter, Message: "missing parameter"}
	ErrArtifactLoadFailure = &Error{Code: CodeArtifactLoadFailure, Message: "artifact load failure"}
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "not found"}
	ErrRateLimited         = &Error{Code: CodeRateLimited, Message: "rate limited"}
	ErrInternal            = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// UnknownCategory creates an unknown category error.
func UnknownCategory(msg string) *Error {
	return &Error{Code: CodeUnknownCategory, Message: msg}
}

// UnknownCategoryf creates an unknown category error with formatted message.
func UnknownCategoryf(format string, args ...any) *Error {
	return &Error{Code: CodeUnknownCategory, Message: fmt.Sprintf(format, args...)}
}

// SchemaMismatch creates a schema mismatch error.
func SchemaMismatch(msg string) *Error {
	return &Error{Code: CodeSchemaMismatch, Message: msg}
}

// SchemaMismatchf creates a schema mismatch error with formatted message.
func SchemaMismatchf(format string, args ...any) *Error {
	return &Error{Code: CodeSchemaMismatch, Message: fmt.Sprintf(format, args...)}
}

// InvalidQuantity creates an invalid quantity error.
func InvalidQuantity(msg string) *Error {
	return &Error{Code: CodeInvalidQuantity, Message: msg}
}

// InvalidQuantityf creates an invalid quantity error with formatted message.
func InvalidQuantityf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidQuantity, Message: fmt.Sprintf(format, args...)}
}

// MissingParameter creates a missing parameter error.
func MissingParameter(msg string) *Error {
	return &Error{Code: CodeMissingParameter, Message: msg}
}

// MissingParameterWithDetails creates a missing parameter error with per-field details.
func MissingParameterWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeMissingParameter, Message: msg, Details: details}
}

// ArtifactLoadFailuref creates an artifact load failure with formatted message.
func ArtifactLoadFailuref(format string, args ...any) *Error {
	return &Error{Code: CodeArtifactLoadFailure, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// RateLimited creates a rate limited error.
func RateLimited(msg string) *Error {
	return &Error{Code: CodeRateLimited, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
