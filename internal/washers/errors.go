package washers

import (
	"errors"
	"fmt"
)

// ErrorType defines the stage of the pipeline an error came from
type ErrorType string

// Error types
const (
	ParseError  ErrorType = "parse"
	RenderError ErrorType = "render"
	MinifyError ErrorType = "minify"
	PolicyError ErrorType = "policy"
)

// Error carries the failing stage and function along with the cause.
type Error struct {
	Type    ErrorType
	Func    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s:%s] %v", e.Type, e.Func, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Func, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with context information
func WrapError(err error, errorType ErrorType, funcName, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Type: errorType, Func: funcName, Message: message, Err: err}
}

// WrapParseError wraps a parsing error
func WrapParseError(err error, funcName, message string) error {
	return WrapError(err, ParseError, funcName, message)
}

// WrapRenderError wraps a rendering error
func WrapRenderError(err error, funcName, message string) error {
	return WrapError(err, RenderError, funcName, message)
}

// WrapMinifyError wraps a minification error
func WrapMinifyError(err error, funcName, message string) error {
	return WrapError(err, MinifyError, funcName, message)
}

// WrapPolicyError wraps a policy compilation error
func WrapPolicyError(err error, funcName, message string) error {
	return WrapError(err, PolicyError, funcName, message)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errorType
}

// IsParseError returns true if the error is a parse error
func IsParseError(err error) bool {
	return IsErrorType(err, ParseError)
}

// IsPolicyError returns true if the error is a policy error
func IsPolicyError(err error) bool {
	return IsErrorType(err, PolicyError)
}
