package intent

import (
	"errors"
	"fmt"
)

// ErrorCode classifies intent handling failures.
type ErrorCode string

// Error codes returned by Resolve and Service.Handle.
const (
	ErrCodeInvalidPattern   ErrorCode = "INVALID_PATTERN_FORMAT"
	ErrCodeUnsupportedColor ErrorCode = "UNSUPPORTED_COLOR"
	ErrCodeUnsupportedMood  ErrorCode = "UNSUPPORTED_MOOD"
	ErrCodeUnknownIntent    ErrorCode = "UNKNOWN_INTENT"
	ErrCodeBackend          ErrorCode = "BACKEND_ERROR"
)

// Error is returned for every failure while handling an intent.
// Message is the human-readable reason surfaced to API clients.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error reports the code and Message; the cause is available through Unwrap.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new intent error.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// IsResolutionError reports whether err was raised before any backend call.
func IsResolutionError(err error) bool {
	code := CodeOf(err)
	return code != "" && code != ErrCodeBackend
}
