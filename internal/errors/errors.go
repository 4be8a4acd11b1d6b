// Package errors - Typed estimator errors
// Every failure the CLI or API reports carries a Type, which decides the
// HTTP status and the process exit code.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates a scenario or request failed validation
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a scenario file could not be decoded
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a bad config file or environment override
	TypeConfig Type = "CONFIG_ERROR"

	// TypeExport indicates a rendering or export failure
	TypeExport Type = "EXPORT_ERROR"

	TypeInternal     Type = "INTERNAL_ERROR"
	TypeNotFound     Type = "NOT_FOUND"
	TypeNotSupported Type = "NOT_SUPPORTED"
)

// HTTPStatus maps the type to a response status. Caller mistakes are 4xx.
func (t Type) HTTPStatus() int {
	switch t {
	case TypeInput, TypeParsing, TypeNotSupported:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ExitCode maps the type to a CLI exit status: 2 for usage and input
// problems, 1 for everything else.
func (t Type) ExitCode() int {
	switch t {
	case TypeInput, TypeParsing, TypeNotSupported, TypeConfig:
		return 2
	default:
		return 1
	}
}

// Error is an estimator error
type Error struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
	Cause   error  `json:"-"`

	// Fields names the offending input fields, by their document names
	Fields []string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether e has type t
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// New creates an error
func New(errType Type, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Newf creates an error with a formatted message
func Newf(errType Type, format string, args ...interface{}) *Error {
	return New(errType, fmt.Sprintf(format, args...))
}

// Wrap attaches a type and message to cause
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// TypeOf returns the type of the first *Error in err's chain,
// or TypeInternal if there is none.
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// IsType checks if an error chain contains an error of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// FieldsOf returns the offending fields recorded anywhere in err's chain
func FieldsOf(err error) []string {
	for err != nil {
		if e, ok := err.(*Error); ok && len(e.Fields) > 0 {
			return e.Fields
		}
		err = stderrors.Unwrap(err)
	}
	return nil
}

// ExitCode returns the CLI exit status for err; 0 when err is nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return TypeOf(err).ExitCode()
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Invalid creates an input error naming the fields that failed validation
func Invalid(fields []string, message string) *Error {
	return &Error{Type: TypeInput, Message: message, Fields: fields}
}

func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

func Export(message string, cause error) *Error {
	return Wrap(TypeExport, message, cause)
}

// NotFound reports a missing preset, format or other named resource
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

func NotSupported(operation string) *Error {
	return Newf(TypeNotSupported, "operation not supported: %s", operation)
}

func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
