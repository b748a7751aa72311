package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// TallyError is a structured error with a code, hint and wrapped cause.
type TallyError struct {
	// Code is a unique error identifier (e.g., "E020").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation, usually naming the offending value.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TallyError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TallyError) Unwrap() error {
	return e.Wrapped
}

// Is matches another TallyError with the same code.
func (e *TallyError) Is(target error) bool {
	t, ok := target.(*TallyError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *TallyError) WithDetail(d string) *TallyError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *TallyError) WithDetailf(format string, args ...any) *TallyError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TallyError) WithSuggestion(s string) *TallyError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *TallyError) Wrap(err error) *TallyError {
	e.Wrapped = err
	return e
}

// New creates a TallyError from a registered error code.
func New(code string) *TallyError {
	template, ok := registry[code]
	if !ok {
		return &TallyError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TallyError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a TallyError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *TallyError {
	return &TallyError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err in a TallyError with the given code.
// A TallyError anywhere in err's chain is returned unchanged.
func FromError(err error, code string) *TallyError {
	if err == nil {
		return nil
	}
	var te *TallyError
	if stderrors.As(err, &te) {
		return te
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first TallyError in err's chain, or "".
func Code(err error) string {
	var te *TallyError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}
