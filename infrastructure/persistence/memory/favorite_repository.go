package memory

import (
	"context"
	"sort"

	"marketplace/domain/favorite"
)

// FavoriteRepository is the in-memory implementation of favorite.Repository.
type FavoriteRepository struct {
	store *Store
}

func NewFavoriteRepository(store *Store) *FavoriteRepository {
	return &FavoriteRepository{store: store}
}

func (r *FavoriteRepository) Add(ctx context.Context, f favorite.Favorite) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := favoriteKey{userID: f.UserID, itemID: f.ItemID}
	if _, ok := r.store.favorites[key]; ok {
		return favorite.ErrAlreadyFavorited
	}
	r.store.favorites[key] = f
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, itemID string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := favoriteKey{userID: userID, itemID: itemID}
	if _, ok := r.store.favorites[key]; !ok {
		return favorite.ErrFavoriteNotFound
	}
	delete(r.store.favorites, key)
	return nil
}

func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var favorites []favorite.Favorite
	for key, f := range r.store.favorites {
		if key.userID == userID {
			favorites = append(favorites, f)
		}
	}
	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
	})
	return favorites, nil
}

var _ favorite.Repository = (*FavoriteRepository)(nil)
