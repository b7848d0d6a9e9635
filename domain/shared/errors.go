/*
Package shared holds the building blocks common to all subdomains: the
actor model, domain events, the unit-of-work contract and the error
plumbing.

Error design:
1. Sentinel errors support errors.Is() classification across layers.
2. DomainError captures the stack at creation time and formats it lazily.
3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an optimistic-concurrency loss or a uniqueness
	// violation. Callers may retry; the core never retries it internally.
	ErrConflict = errors.New("conflict")

	// ErrValidation marks a malformed payload.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks an actor lacking the role or ownership the
	// requested action demands.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition marks an action not defined for the entity's
	// current lifecycle state.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// DomainError is a structured error carrying business context and the stack
// of the point where it was created. It supports errors.Is/errors.As through
// its sentinel.
type DomainError struct {
	Err     error  // sentinel, for errors.Is()
	Entity  string // "item", "order", "favorite"
	Message string
	Field   string // optional, set for validation errors

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames. Only called when logging.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// Stacker is implemented by errors that carry their creation stack.
type Stacker interface {
	Stack() []string
}

// NewDomainError builds a DomainError with the caller's stack attached.
func NewDomainError(sentinel error, entity, message string) *DomainError {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError builds a field-level validation error.
func NewValidationError(entity, field, message string) *DomainError {
	return &DomainError{
		Err:     ErrValidation,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// CaptureStack captures the current call stack. skip is the number of frames
// to drop (typically 3: Callers, CaptureStack, the constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	stack := make([]uintptr, n)
	copy(stack, pcs[:n])
	return stack
}

// FormatStack renders captured frames as "func (file:line)" strings,
// stopping at the runtime boundary.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(stack)
	out := make([]string, 0, len(stack))
	for {
		frame, more := frames.Next()
		if frame.Function == "" || strings.HasPrefix(frame.Function, "runtime.") {
			break
		}
		out = append(out, fmt.Sprintf("%s (%s:%d)", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return out
}
