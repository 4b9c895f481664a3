package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Filesystem errors
	ErrDirList  ErrorCode = "DIR_LIST"
	ErrFileRead ErrorCode = "FILE_READ"

	// Rendering errors
	ErrTemplateParse  ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"

	// Git errors
	ErrGitOpen      ErrorCode = "GIT_OPEN"
	ErrGitOperation ErrorCode = "GIT_OPERATION"
)

// PromptpackError represents a structured error with code and details
type PromptpackError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PromptpackError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PromptpackError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PromptpackError) Is(target error) bool {
	var targetErr *PromptpackError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PromptpackError with the given code and message
func New(code ErrorCode, message string) *PromptpackError {
	return &PromptpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PromptpackError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PromptpackError {
	return &PromptpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PromptpackError
func Wrap(err error, code ErrorCode, message string) *PromptpackError {
	if err == nil {
		return nil
	}
	return &PromptpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PromptpackError {
	if err == nil {
		return nil
	}
	return &PromptpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PromptpackError) WithDetail(key string, value interface{}) *PromptpackError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *PromptpackError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PromptpackError
func GetErrorCode(err error) ErrorCode {
	var perr *PromptpackError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PromptpackError
func GetErrorDetails(err error) map[string]interface{} {
	var perr *PromptpackError
	if errors.As(err, &perr) {
		return perr.Details
	}
	return nil
}
