package memory

import (
	"context"
	"sort"

	"marketplace/domain/order"
)

// OrderRepository is the in-memory implementation of order.Repository.
type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func snapshotOrder(o *order.Order) order.ReconstructionDTO {
	return order.ReconstructionDTO{
		ID:         o.ID(),
		ItemID:     o.ItemID(),
		BuyerID:    o.BuyerID(),
		SellerID:   o.SellerID(),
		Price:      o.Price(),
		State:      o.State(),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		FinishedAt: o.FinishedAt(),
	}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if o.IsNew() {
		r.store.orders[o.ID()] = snapshotOrder(o)
		o.ClearNewFlag()
		return nil
	}

	stored, ok := r.store.orders[o.ID()]
	if !ok {
		return order.NewNotFoundError(o.ID())
	}
	if stored.Version != o.Version() {
		return order.NewConcurrentModificationError(o.ID())
	}

	o.IncrementVersionForSave()
	r.store.orders[o.ID()] = snapshotOrder(o)
	o.ClearNewFlag()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.orders[id]
	if !ok {
		return nil, order.NewNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

func (r *OrderRepository) FindByBuyerID(ctx context.Context, buyerID string) ([]*order.Order, error) {
	return r.findAll(ctx, func(dto order.ReconstructionDTO) bool {
		return dto.BuyerID == buyerID
	})
}

func (r *OrderRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*order.Order, error) {
	return r.findAll(ctx, func(dto order.ReconstructionDTO) bool {
		return dto.SellerID == sellerID
	})
}

func (r *OrderRepository) FindOpenByItemID(ctx context.Context, itemID string) ([]*order.Order, error) {
	return r.findAll(ctx, func(dto order.ReconstructionDTO) bool {
		return dto.ItemID == itemID && dto.State == order.StateOpen
	})
}

func (r *OrderRepository) findAll(ctx context.Context, match func(order.ReconstructionDTO) bool) ([]*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var dtos []order.ReconstructionDTO
	for _, dto := range r.store.orders {
		if match(dto) {
			dtos = append(dtos, dto)
		}
	}
	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].CreatedAt.After(dtos[j].CreatedAt)
	})

	orders := make([]*order.Order, len(dtos))
	for i, dto := range dtos {
		orders[i] = order.RebuildFromDTO(dto)
	}
	return orders, nil
}

// SeedForTest stores an order snapshot directly, bypassing aggregate
// invariants. Test helper for concurrency scenarios.
func (r *OrderRepository) SeedForTest(dto order.ReconstructionDTO) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[dto.ID] = dto
}

var _ order.Repository = (*OrderRepository)(nil)
