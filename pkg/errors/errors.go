package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinels usable with errors.Is against any engine-originated error.
var (
	ErrInvalidTarget        = stderrors.New("invalid proxy target")
	ErrIncompleteMiddleware = stderrors.New("middleware dropped a required trap")
	ErrNotCallable          = stderrors.New("value is not callable")
	ErrNotConstructor       = stderrors.New("value is not a constructor")
	ErrNotObject            = stderrors.New("value is not an object")
	ErrInvalidArgument      = stderrors.New("argument has the wrong type")
)

// MoxyError is the interface implemented by all errors the engine itself raises.
// Errors thrown by mocked targets or installed fakes are never converted to
// MoxyError; they travel back to the caller untouched.
type MoxyError interface {
	error
	Kind() string // e.g., "Type", "Middleware"
	// Message returns the specific error message without the kind prefix.
	Message() string
	Unwrap() error
}

// --- Concrete Error Types ---

// TypeError reports an operation applied to a value of the wrong shape, such as
// producing a double from a primitive or calling a non-callable object.
type TypeError struct {
	Msg   string
	Cause error // Underlying cause, usually one of the sentinels
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("TypeError: %s", e.Msg)
}
func (e *TypeError) Kind() string    { return "Type" }
func (e *TypeError) Message() string { return e.Msg }
func (e *TypeError) Unwrap() error   { return e.Cause }
func (e *TypeError) CausedBy(cause error) *TypeError {
	e.Cause = cause
	return e
}

// MiddlewareError is raised while building an interception handler when a
// middleware returns a handler missing one of the base traps.
type MiddlewareError struct {
	Middleware string // name of the offending middleware
	Index      int    // position in the middleware list
	Trap       string // the trap that went missing
	Msg        string
	Cause      error
}

func (e *MiddlewareError) Error() string {
	return fmt.Sprintf("Middleware Error in #%d (%s): %s", e.Index, e.Middleware, e.Msg)
}
func (e *MiddlewareError) Kind() string    { return "Middleware" }
func (e *MiddlewareError) Message() string { return e.Msg }
func (e *MiddlewareError) Unwrap() error   { return e.Cause }
func (e *MiddlewareError) CausedBy(cause error) *MiddlewareError {
	e.Cause = cause
	return e
}

// --- Helpers for creating errors ---

// NewTypeError formats a TypeError with the given sentinel as its cause.
func NewTypeError(cause error, format string, args ...any) *TypeError {
	return (&TypeError{Msg: fmt.Sprintf(format, args...)}).CausedBy(cause)
}

// MissingTrap builds the error for a middleware that dropped trap.
func MissingTrap(index int, middleware, trap string) *MiddlewareError {
	return (&MiddlewareError{
		Middleware: middleware,
		Index:      index,
		Trap:       trap,
		Msg:        fmt.Sprintf("handler returned by the middleware has no %q trap", trap),
	}).CausedBy(ErrIncompleteMiddleware)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
