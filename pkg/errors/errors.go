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
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrMissingVariable  ErrorCode = "MISSING_VARIABLE"

	// FileSystem errors
	ErrDestinationExists ErrorCode = "DESTINATION_EXISTS"
	ErrIOFailure         ErrorCode = "IO_FAILURE"
)

// Detail keys shared by the constructors below
const (
	DetailPath     = "path"
	DetailVariable = "variable"
	DetailOp       = "op"
	DetailTemplate = "template"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// TemplateNotFound reports an identifier that resolved to no template.
func TemplateNotFound(identifier string) *Error {
	return Newf(ErrTemplateNotFound, "template %q does not exist", identifier).
		WithDetail(DetailTemplate, identifier)
}

// MissingVariable reports a token whose name has no value. path is the
// template path the token was found in and may be empty.
func MissingVariable(name, path string) *Error {
	var e *Error
	if path == "" {
		e = Newf(ErrMissingVariable, "no value for variable %q", name)
	} else {
		e = Newf(ErrMissingVariable, "no value for variable %q in %s", name, path)
	}
	return e.WithDetail(DetailVariable, name).WithDetail(DetailPath, path)
}

// DestinationExists reports a write target that is already present.
func DestinationExists(path string) *Error {
	return Newf(ErrDestinationExists, "destination %s already exists", path).
		WithDetail(DetailPath, path)
}

// IOFailure wraps a filesystem error with the operation and path that failed.
func IOFailure(err error, op, path string) *Error {
	e := Wrapf(err, ErrIOFailure, "%s %s", op, path)
	if e == nil {
		return nil
	}
	return e.WithDetail(DetailOp, op).WithDetail(DetailPath, path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an *Error
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// Message returns the text shown to users for err: coded errors lose their
// [CODE] prefix, and wrapped causes are appended after a colon
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Wrapped != nil {
		return e.Message + ": " + Message(e.Wrapped)
	}
	return e.Message
}

// GetErrorDetails returns the details from an error, or nil if not an *Error
func GetErrorDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
