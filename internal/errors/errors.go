package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (duplicate email, unique violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"

	// ErrCodeUnauthenticated means no usable credential was presented.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeSessionExpired means the presented token failed verification.
	ErrCodeSessionExpired ErrorCode = "session_expired"
	// ErrCodeSessionRevoked means the access token was blacklisted at logout.
	ErrCodeSessionRevoked ErrorCode = "session_revoked"
	// ErrCodeAccessDenied means the caller is known but not allowed.
	ErrCodeAccessDenied ErrorCode = "access_denied"
	// ErrCodeInvalidCredentials is a login failure that never says which part was wrong.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeNotVerified means the account exists but its email was never confirmed.
	ErrCodeNotVerified ErrorCode = "not_verified"
	// ErrCodePasswordMismatch means two password fields that must agree did not.
	ErrCodePasswordMismatch ErrorCode = "password_mismatch"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field names the offending input for validation and conflict errors.
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError { return New(ErrCodeNotFound, message) }

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError { return New(ErrCodeConflict, message) }

// Validation creates a new Validation error.
func Validation(message string) *AppError { return New(ErrCodeValidation, message) }

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError { return New(ErrCodeInternal, message) }

// Unauthenticated reports a missing or malformed credential.
func Unauthenticated(message string) *AppError { return New(ErrCodeUnauthenticated, message) }

// SessionExpired reports a token that failed signature or expiry checks.
func SessionExpired(message string) *AppError { return New(ErrCodeSessionExpired, message) }

// SessionRevoked reports a blacklisted access token.
func SessionRevoked(message string) *AppError { return New(ErrCodeSessionRevoked, message) }

// AccessDenied reports an authenticated caller without the required rights.
func AccessDenied(message string) *AppError { return New(ErrCodeAccessDenied, message) }

// InvalidCredentials reports a failed login.
func InvalidCredentials(message string) *AppError { return New(ErrCodeInvalidCredentials, message) }

// NotVerified reports a login against an unconfirmed account.
func NotVerified(message string) *AppError { return New(ErrCodeNotVerified, message) }

// PasswordMismatch reports two password fields that disagree.
func PasswordMismatch(message string) *AppError { return New(ErrCodePasswordMismatch, message) }

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// IsAppError reports whether err carries an AppError with the given code.
func IsAppError(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return IsAppError(err, ErrCodeNotFound) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return IsAppError(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return IsAppError(err, ErrCodeValidation) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// Soft reports whether the code is a recoverable credential failure that the API
// answers with a success status and status:false in the body.
func (c ErrorCode) Soft() bool {
	switch c {
	case ErrCodeInvalidCredentials, ErrCodeNotVerified, ErrCodePasswordMismatch:
		return true
	default:
		return false
	}
}
