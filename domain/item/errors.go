package item

import (
	"errors"
	"fmt"

	"marketplace/domain/shared"
)

var (
	// ErrItemNotFound supports errors.Is() checks across layers.
	ErrItemNotFound = errors.New("item not found")

	// ErrConcurrentModification is returned when an optimistic-locked save
	// loses the race. Surfaces to the caller as a conflict; never retried
	// internally.
	ErrConcurrentModification = errors.New("item was modified by another transaction")

	// ErrOpenOrderExists blocks deletion of a listing that an open order
	// still references.
	ErrOpenOrderExists = errors.New("item has an open order")
)

// NewNotFoundError creates an item-not-found error with the lookup ID.
func NewNotFoundError(itemID string) error {
	return &itemError{
		sentinel: ErrItemNotFound,
		message:  "item not found: " + itemID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(itemID string) error {
	return &itemError{
		sentinel: ErrConcurrentModification,
		message:  "item " + itemID + " was modified by another transaction",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidTransitionError names both states so a rejected transition is
// diagnosable from the error alone.
func NewInvalidTransitionError(itemID string, from, to State) error {
	return &itemError{
		sentinel: shared.ErrInvalidTransition,
		message:  fmt.Sprintf("item %s cannot move from %s to %s", itemID, from, to),
		stack:    shared.CaptureStack(3),
	}
}

// NewTerminalStateError rejects any mutation of a listing in a terminal
// state.
func NewTerminalStateError(itemID string, state State) error {
	return &itemError{
		sentinel: shared.ErrInvalidTransition,
		message:  fmt.Sprintf("item %s is %s and can no longer change", itemID, state),
		stack:    shared.CaptureStack(3),
	}
}

// NewOpenOrderExistsError rejects deletion while an open order references
// the listing.
func NewOpenOrderExistsError(itemID string) error {
	return &itemError{
		sentinel: ErrOpenOrderExists,
		message:  "item " + itemID + " cannot be deleted while an order is open against it",
		stack:    shared.CaptureStack(3),
	}
}

type itemError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *itemError) Error() string {
	return e.message
}

func (e *itemError) Unwrap() error {
	return e.sentinel
}

func (e *itemError) Stack() []string {
	return shared.FormatStack(e.stack)
}
