// Package errors provides standardized domain errors with codes for the MinatBaca API.
//
// Usage:
//
//	// In services - return typed errors
//	if exists {
//	    return errors.AlreadyExists("profile already exists")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrGenreLimitExceeded) {
//	    ...
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    status := domainErr.HTTPStatus()
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
	CodeNotFound              Code = "NOT_FOUND"
	CodeAlreadyExists         Code = "ALREADY_EXISTS"
	CodeValidation            Code = "VALIDATION"
	CodeInvalidGenre          Code = "INVALID_GENRE"
	CodeInvalidRating         Code = "INVALID_RATING"
	CodeGenreLimitExceeded    Code = "GENRE_LIMIT_EXCEEDED"
	CodeCannotBlockActiveBook Code = "CANNOT_BLOCK_ACTIVE_BOOK"
	CodeBookBlocked           Code = "BOOK_BLOCKED"
	CodeUnauthorized          Code = "UNAUTHORIZED"
	CodeForbidden             Code = "FORBIDDEN"
	CodeInvalidCredentials    Code = "INVALID_CREDENTIALS"
	CodeTokenExpired          Code = "TOKEN_EXPIRED"
	CodeInternal              Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeGenreLimitExceeded, CodeCannotBlockActiveBook, CodeBookBlocked:
		return http.StatusConflict
	case CodeValidation, CodeInvalidGenre, CodeInvalidRating:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
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
	ErrNotFound              = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists         = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation            = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInvalidGenre          = &Error{Code: CodeInvalidGenre, Message: "invalid genre"}
	ErrInvalidRating         = &Error{Code: CodeInvalidRating, Message: "invalid rating"}
	ErrGenreLimitExceeded    = &Error{Code: CodeGenreLimitExceeded, Message: "genre limit exceeded"}
	ErrCannotBlockActiveBook = &Error{Code: CodeCannotBlockActiveBook, Message: "cannot block active book"}
	ErrBookBlocked           = &Error{Code: CodeBookBlocked, Message: "book is blocked"}
	ErrUnauthorized          = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden             = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrInvalidCredentials    = &Error{Code: CodeInvalidCredentials, Message: "invalid credentials"}
	ErrTokenExpired          = &Error{Code: CodeTokenExpired, Message: "token expired"}
	ErrInternal              = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// AlreadyExistsf creates an already exists error with formatted message.
func AlreadyExistsf(format string, args ...any) *Error {
	return &Error{Code: CodeAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// InvalidGenre creates an invalid genre error.
func InvalidGenre(msg string) *Error {
	return &Error{Code: CodeInvalidGenre, Message: msg}
}

// InvalidRating creates an invalid rating error.
func InvalidRating(msg string) *Error {
	return &Error{Code: CodeInvalidRating, Message: msg}
}

// GenreLimitExceeded creates a genre limit error.
func GenreLimitExceeded(msg string) *Error {
	return &Error{Code: CodeGenreLimitExceeded, Message: msg}
}

// CannotBlockActiveBook creates an active book block error.
func CannotBlockActiveBook(msg string) *Error {
	return &Error{Code: CodeCannotBlockActiveBook, Message: msg}
}

// BookBlocked creates a blocked book error.
func BookBlocked(msg string) *Error {
	return &Error{Code: CodeBookBlocked, Message: msg}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// InvalidCredentials creates an invalid credentials error.
func InvalidCredentials(msg string) *Error {
	return &Error{Code: CodeInvalidCredentials, Message: msg}
}

// TokenExpired creates a token expired error.
func TokenExpired(msg string) *Error {
	return &Error{Code: CodeTokenExpired, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
