package mysql

import (
	"context"
	"errors"
	"strings"

	"marketplace/domain/favorite"
	"marketplace/infrastructure/persistence"
	"marketplace/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// FavoriteRepository is the GORM implementation of favorite.Repository.
// Pair uniqueness rides on the database unique index rather than a
// read-then-write check.
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062")
}

func (r *FavoriteRepository) Add(ctx context.Context, f favorite.Favorite) error {
	if err := r.getDB(ctx).Create(po.FromFavoriteDomain(f)).Error; err != nil {
		if isDuplicateKeyError(err) {
			return favorite.ErrAlreadyFavorited
		}
		return err
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, itemID string) error {
	result := r.getDB(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&po.FavoritePO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return favorite.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	var favoritePOs []po.FavoritePO
	if err := r.getDB(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favoritePOs).Error; err != nil {
		return nil, err
	}
	favorites := make([]favorite.Favorite, len(favoritePOs))
	for i := range favoritePOs {
		favorites[i] = favoritePOs[i].ToDomain()
	}
	return favorites, nil
}

var _ favorite.Repository = (*FavoriteRepository)(nil)
