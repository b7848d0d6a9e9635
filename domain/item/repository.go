package item

import "context"

// Repository persists Item aggregates. Save must perform a versioned
// compare-and-swap for existing aggregates and return
// ErrConcurrentModification when the version no longer matches.
// Implementations use the transaction from context when present.
type Repository interface {
	Save(ctx context.Context, it *Item) error
	FindByID(ctx context.Context, id string) (*Item, error)
	FindBySellerID(ctx context.Context, sellerID string) ([]*Item, error)
	FindByState(ctx context.Context, state State) ([]*Item, error)
	Delete(ctx context.Context, id string) error
}
