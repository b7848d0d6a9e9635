package mysql

import (
	"context"
	"errors"

	"marketplace/domain/item"
	"marketplace/infrastructure/persistence"
	"marketplace/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ItemRepository is the GORM implementation of item.Repository. GORM
// associations are not used; aggregate boundaries stay in the domain layer.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save inserts new aggregates and updates existing ones under a strict
// optimistic lock: the update is conditioned on the loaded version, so a
// concurrent writer makes RowsAffected come back zero instead of being
// silently overwritten.
func (r *ItemRepository) Save(ctx context.Context, it *item.Item) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, it)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, it)
	})
}

func (r *ItemRepository) saveWithTx(tx *gorm.DB, it *item.Item) error {
	itemPO, err := po.FromItemDomain(it)
	if err != nil {
		return err
	}

	if it.IsNew() {
		if err := tx.Create(itemPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := it.Version()

		result := tx.Model(&po.ItemPO{}).
			Where("id = ? AND version = ?", it.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"title":             itemPO.Title,
				"description":       itemPO.Description,
				"price_amount":      itemPO.PriceAmount,
				"price_currency":    itemPO.PriceCurrency,
				"original_amount":   itemPO.OriginalAmount,
				"original_currency": itemPO.OriginalCurrency,
				"category":          itemPO.Category,
				"condition":         itemPO.Condition,
				"contact_info":      itemPO.ContactInfo,
				"location":          itemPO.Location,
				"image_urls":        itemPO.ImageURLs,
				"state":             itemPO.State,
				"version":           expectedVersion + 1,
				"updated_at":        itemPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.ItemPO{}).Where("id = ?", it.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return item.NewNotFoundError(it.ID())
			}
			return item.NewConcurrentModificationError(it.ID())
		}

		it.IncrementVersionForSave()
	}
	it.ClearNewFlag()
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*item.Item, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var itemPO po.ItemPO
	result := r.getDB(ctx).First(&itemPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, item.NewNotFoundError(id)
		}
		return nil, result.Error
	}

	return itemPO.ToDomain()
}

func (r *ItemRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*item.Item, error) {
	var itemPOs []po.ItemPO
	if err := r.getDB(ctx).Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return toItems(itemPOs)
}

func (r *ItemRepository) FindByState(ctx context.Context, state item.State) ([]*item.Item, error) {
	var itemPOs []po.ItemPO
	if err := r.getDB(ctx).Where("state = ?", string(state)).
		Order("created_at DESC").
		Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return toItems(itemPOs)
}

// Delete removes the row. Callers guard deletability (SOLD items, open
// orders) before calling.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&po.ItemPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return item.NewNotFoundError(id)
	}
	return nil
}

func toItems(itemPOs []po.ItemPO) ([]*item.Item, error) {
	items := make([]*item.Item, len(itemPOs))
	for i := range itemPOs {
		it, err := itemPOs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		items[i] = it
	}
	return items, nil
}

var _ item.Repository = (*ItemRepository)(nil)
