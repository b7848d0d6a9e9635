package po

import (
	"time"

	"marketplace/domain/favorite"
)

// FavoritePO maps a user's bookmark of an item. The unique index makes a
// duplicate Add fail at the database instead of racing a read-then-write.
type FavoritePO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_user_item"`
	ItemID    string    `gorm:"size:64;not null;index;uniqueIndex:idx_user_item"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FavoritePO) TableName() string {
	return "favorites"
}

func FromFavoriteDomain(f favorite.Favorite) *FavoritePO {
	return &FavoritePO{
		UserID:    f.UserID,
		ItemID:    f.ItemID,
		CreatedAt: f.CreatedAt,
	}
}

func (po *FavoritePO) ToDomain() favorite.Favorite {
	return favorite.Favorite{
		UserID:    po.UserID,
		ItemID:    po.ItemID,
		CreatedAt: po.CreatedAt,
	}
}
