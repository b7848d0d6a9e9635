package order

import (
	"errors"
	"fmt"

	"marketplace/domain/shared"
)

var (
	// ErrOrderNotFound supports errors.Is() checks across layers.
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification is returned when an optimistic-locked save
	// loses the race. Surfaces to the caller as a conflict; never retried
	// internally.
	ErrConcurrentModification = errors.New("order was modified by another transaction")

	// ErrInvalidItemState rejects order creation against a listing that is
	// not ON_SALE.
	ErrInvalidItemState = errors.New("item is not on sale")

	// ErrSelfPurchase rejects a buyer ordering their own listing.
	ErrSelfPurchase = errors.New("cannot purchase own item")

	// ErrItemNoLongerAvailable aborts a finish whose listing left the
	// sellable states before commit. The whole transaction rolls back.
	ErrItemNoLongerAvailable = errors.New("item is no longer available")
)

// NewNotFoundError creates an order-not-found error with the lookup ID.
func NewNotFoundError(orderID string) error {
	return &orderError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidTransitionError names both states so a rejected transition is
// diagnosable from the error alone.
func NewInvalidTransitionError(orderID string, from, to State) error {
	return &orderError{
		sentinel: shared.ErrInvalidTransition,
		message:  fmt.Sprintf("order %s cannot move from %s to %s", orderID, from, to),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidItemStateError rejects order creation against a non-ON_SALE
// listing, naming the state the listing was actually in.
func NewInvalidItemStateError(itemID, state string) error {
	return &orderError{
		sentinel: ErrInvalidItemState,
		message:  fmt.Sprintf("item %s is %s and cannot be ordered", itemID, state),
		stack:    shared.CaptureStack(3),
	}
}

// NewSelfPurchaseError rejects a buyer ordering their own listing.
func NewSelfPurchaseError(itemID, buyerID string) error {
	return &orderError{
		sentinel: ErrSelfPurchase,
		message:  fmt.Sprintf("buyer %s owns item %s and cannot purchase it", buyerID, itemID),
		stack:    shared.CaptureStack(3),
	}
}

// NewOpenOrderExistsError rejects a second open order against the same
// listing.
func NewOpenOrderExistsError(itemID string) error {
	return &orderError{
		sentinel: shared.ErrConflict,
		message:  "item " + itemID + " already has an open order",
		stack:    shared.CaptureStack(3),
	}
}

// NewItemNoLongerAvailableError aborts a finish racing against a completed
// sale of the same listing.
func NewItemNoLongerAvailableError(orderID, itemID string) error {
	return &orderError{
		sentinel: ErrItemNoLongerAvailable,
		message:  fmt.Sprintf("order %s cannot finish: item %s is no longer available", orderID, itemID),
		stack:    shared.CaptureStack(3),
	}
}

type orderError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderError) Error() string {
	return e.message
}

func (e *orderError) Unwrap() error {
	return e.sentinel
}

func (e *orderError) Stack() []string {
	return shared.FormatStack(e.stack)
}
