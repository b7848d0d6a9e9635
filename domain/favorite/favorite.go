// Package favorite lets users bookmark listings. A favorite is a plain
// (user, item) pair with no lifecycle; it exists or it does not.
package favorite

import (
	"context"
	"errors"
	"time"

	"marketplace/domain/shared"
)

var (
	// ErrAlreadyFavorited marks a duplicate (user, item) pair.
	ErrAlreadyFavorited = errors.New("item already favorited")

	// ErrFavoriteNotFound marks a removal of a pair that does not exist.
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// Favorite is one user's bookmark of one listing.
type Favorite struct {
	UserID    string
	ItemID    string
	CreatedAt time.Time
}

// New creates a favorite for the given pair.
func New(userID, itemID string) (Favorite, error) {
	if userID == "" {
		return Favorite{}, shared.NewValidationError("favorite", "user_id", "user ID must not be empty")
	}
	if itemID == "" {
		return Favorite{}, shared.NewValidationError("favorite", "item_id", "item ID must not be empty")
	}
	return Favorite{UserID: userID, ItemID: itemID, CreatedAt: time.Now()}, nil
}

// Repository persists favorites. Add must enforce pair uniqueness and
// return ErrAlreadyFavorited on duplicates.
type Repository interface {
	Add(ctx context.Context, f Favorite) error
	Remove(ctx context.Context, userID, itemID string) error
	FindByUserID(ctx context.Context, userID string) ([]Favorite, error)
}
