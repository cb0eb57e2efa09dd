package gate_errors

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrIO           = errors.New("io error")
	ErrDelivery     = errors.New("delivery error")
)

// Kind classifies an AppError for the error pipeline.
type Kind int

const (
	KindGeneric Kind = iota
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "GENERIC"
	}
}

// DefaultName labels generic errors raised by the application itself.
const DefaultName = "AppError"

// AppError is the error value carried through the error pipeline.
// It is created at the failure site and never mutated afterwards.
type AppError struct {
	Kind      Kind
	Name      string
	Message   string
	Path      string
	Stack     string
	Timestamp time.Time

	cause error
}

// NotFound builds the error raised for a request path no route matches.
func NotFound(path string) *AppError {
	return &AppError{
		Kind:      KindNotFound,
		Name:      "NotFound",
		Message:   "Page not found on this path: " + path,
		Path:      path,
		Stack:     string(debug.Stack()),
		Timestamp: time.Now(),
		cause:     ErrNotFound,
	}
}

// Generic builds an unclassified application error.
func Generic(name, message string) *AppError {
	if name == "" {
		name = DefaultName
	}
	return &AppError{
		Kind:      KindGeneric,
		Name:      name,
		Message:   message,
		Stack:     string(debug.Stack()),
		Timestamp: time.Now(),
	}
}

// From converts any error into an AppError. Errors that already are (or wrap)
// an AppError are returned as is.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	wrapped := Generic("Error", err.Error())
	wrapped.cause = err
	return wrapped
}

// FromPanic converts a recovered panic value into an AppError.
func FromPanic(recovered any) *AppError {
	switch v := recovered.(type) {
	case *AppError:
		return v
	case error:
		return From(v)
	default:
		return Generic("panic", fmt.Sprint(v))
	}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// IsNotFound reports whether the error classifies as not found.
func (e *AppError) IsNotFound() bool {
	return e != nil && e.Kind == KindNotFound
}
