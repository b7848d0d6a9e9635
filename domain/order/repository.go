package order

import "context"

// Repository persists Order aggregates. Save must perform a versioned
// compare-and-swap for existing aggregates and return
// ErrConcurrentModification when the version no longer matches.
// Implementations use the transaction from context when present.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByBuyerID(ctx context.Context, buyerID string) ([]*Order, error)
	FindBySellerID(ctx context.Context, sellerID string) ([]*Order, error)

	// FindOpenByItemID returns the orders still OPEN against one listing.
	// Used for the one-open-order creation check and the deletion guard.
	FindOpenByItemID(ctx context.Context, itemID string) ([]*Order, error)
}
