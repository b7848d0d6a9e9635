// Package favorite orchestrates listing bookmarks.
package favorite

import (
	"context"
	"errors"
	"time"

	"marketplace/domain/favorite"
	"marketplace/domain/item"
	"marketplace/domain/shared"
)

// FavoriteResponse is one bookmark enriched with a listing summary. The
// listing block is omitted when the listing has been deleted since.
type FavoriteResponse struct {
	ItemID    string       `json:"item_id"`
	CreatedAt time.Time    `json:"created_at"`
	Item      *ItemSummary `json:"item,omitempty"`
}

// ItemSummary is the subset of listing fields shown in a favorites list.
type ItemSummary struct {
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	State    string `json:"state"`
	SellerID string `json:"seller_id"`
}

// ApplicationService coordinates bookmark operations.
type ApplicationService struct {
	favoriteRepo favorite.Repository
	itemRepo     item.Repository
}

func NewApplicationService(favoriteRepo favorite.Repository, itemRepo item.Repository) *ApplicationService {
	return &ApplicationService{
		favoriteRepo: favoriteRepo,
		itemRepo:     itemRepo,
	}
}

func forbidden(message string) error {
	return shared.NewDomainError(shared.ErrUnauthorized, "favorite", message)
}

// Add bookmarks a listing for the actor. The listing must exist; duplicates
// are rejected.
func (s *ApplicationService) Add(ctx context.Context, actor shared.Actor, itemID string) error {
	if actor.IsZero() {
		return forbidden("authentication required to favorite a listing")
	}
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return err
	}
	f, err := favorite.New(actor.ID, itemID)
	if err != nil {
		return err
	}
	return s.favoriteRepo.Add(ctx, f)
}

// Remove drops the actor's bookmark of a listing.
func (s *ApplicationService) Remove(ctx context.Context, actor shared.Actor, itemID string) error {
	if actor.IsZero() {
		return forbidden("authentication required to unfavorite a listing")
	}
	return s.favoriteRepo.Remove(ctx, actor.ID, itemID)
}

// List returns the actor's bookmarks, newest first, each enriched with the
// current listing summary when the listing still exists.
func (s *ApplicationService) List(ctx context.Context, actor shared.Actor) ([]*FavoriteResponse, error) {
	if actor.IsZero() {
		return nil, forbidden("authentication required to list favorites")
	}
	favorites, err := s.favoriteRepo.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*FavoriteResponse, len(favorites))
	for i, f := range favorites {
		resp := &FavoriteResponse{
			ItemID:    f.ItemID,
			CreatedAt: f.CreatedAt,
		}
		it, err := s.itemRepo.FindByID(ctx, f.ItemID)
		switch {
		case err == nil:
			resp.Item = &ItemSummary{
				Title:    it.Title(),
				Price:    it.Price().Amount(),
				Currency: it.Price().Currency(),
				State:    string(it.State()),
				SellerID: it.SellerID(),
			}
		case errors.Is(err, item.ErrItemNotFound):
			// Listing deleted since it was favorited; keep the bare entry.
		default:
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}
