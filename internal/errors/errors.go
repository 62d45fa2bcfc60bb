package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryBuild  Category = "build"
	CategoryDeploy Category = "deploy"
	CategoryCLI    Category = "cli"
)

// WayfinderError is a structured error with a stable code, a fix
// suggestion, and a documentation link.
type WayfinderError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (config, build, deploy, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WayfinderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WayfinderError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *WayfinderError) WithDetail(d string) *WayfinderError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WayfinderError) WithSuggestion(s string) *WayfinderError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *WayfinderError) Wrap(err error) *WayfinderError {
	e.Wrapped = err
	return e
}

// New creates a WayfinderError from a registered error code.
func New(code string) *WayfinderError {
	template, ok := registry[code]
	if !ok {
		return &WayfinderError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WayfinderError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new WayfinderError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WayfinderError {
	return &WayfinderError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WayfinderError.
func FromError(err error, code string) *WayfinderError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WayfinderError); ok {
		return we
	}
	return New(code).Wrap(err)
}
