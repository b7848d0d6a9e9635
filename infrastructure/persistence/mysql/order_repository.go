package mysql

import (
	"context"
	"errors"

	"marketplace/domain/order"
	"marketplace/infrastructure/persistence"
	"marketplace/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository is the GORM implementation of order.Repository.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save inserts new aggregates and updates existing ones under a strict
// optimistic lock keyed on the loaded version.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO := po.FromOrderDomain(o)

	if o.IsNew() {
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := o.Version()

		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"state":       orderPO.State,
				"finished_at": orderPO.FinishedAt,
				"version":     expectedVersion + 1,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return order.NewNotFoundError(o.ID())
			}
			return order.NewConcurrentModificationError(o.ID())
		}

		o.IncrementVersionForSave()
	}
	o.ClearNewFlag()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var orderPO po.OrderPO
	result := r.getDB(ctx).First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewNotFoundError(id)
		}
		return nil, result.Error
	}

	return orderPO.ToDomain(), nil
}

func (r *OrderRepository) FindByBuyerID(ctx context.Context, buyerID string) ([]*order.Order, error) {
	return r.findAll(ctx, "buyer_id = ?", buyerID)
}

func (r *OrderRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*order.Order, error) {
	return r.findAll(ctx, "seller_id = ?", sellerID)
}

func (r *OrderRepository) FindOpenByItemID(ctx context.Context, itemID string) ([]*order.Order, error) {
	var orderPOs []po.OrderPO
	if err := r.getDB(ctx).
		Where("item_id = ? AND state = ?", itemID, string(order.StateOpen)).
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return toOrders(orderPOs), nil
}

func (r *OrderRepository) findAll(ctx context.Context, query string, arg interface{}) ([]*order.Order, error) {
	var orderPOs []po.OrderPO
	if err := r.getDB(ctx).Where(query, arg).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return toOrders(orderPOs), nil
}

func toOrders(orderPOs []po.OrderPO) []*order.Order {
	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain()
	}
	return orders
}

var _ order.Repository = (*OrderRepository)(nil)
