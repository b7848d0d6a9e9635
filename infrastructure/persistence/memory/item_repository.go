package memory

import (
	"context"
	"sort"

	"marketplace/domain/item"
)

// ItemRepository is the in-memory implementation of item.Repository with the
// same versioned compare-and-swap behavior as the MySQL backend.
type ItemRepository struct {
	store *Store
}

func NewItemRepository(store *Store) *ItemRepository {
	return &ItemRepository{store: store}
}

func snapshotItem(it *item.Item) item.ReconstructionDTO {
	return item.ReconstructionDTO{
		ID:            it.ID(),
		Title:         it.Title(),
		Description:   it.Description(),
		Price:         it.Price(),
		OriginalPrice: it.OriginalPrice(),
		Category:      it.Category(),
		Condition:     it.Condition(),
		ContactInfo:   it.ContactInfo(),
		Location:      it.Location(),
		ImageURLs:     it.ImageURLs(),
		SellerID:      it.SellerID(),
		State:         it.State(),
		Version:       it.Version(),
		CreatedAt:     it.CreatedAt(),
		UpdatedAt:     it.UpdatedAt(),
	}
}

func (r *ItemRepository) Save(ctx context.Context, it *item.Item) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if it.IsNew() {
		r.store.items[it.ID()] = snapshotItem(it)
		it.ClearNewFlag()
		return nil
	}

	stored, ok := r.store.items[it.ID()]
	if !ok {
		return item.NewNotFoundError(it.ID())
	}
	if stored.Version != it.Version() {
		return item.NewConcurrentModificationError(it.ID())
	}

	it.IncrementVersionForSave()
	r.store.items[it.ID()] = snapshotItem(it)
	it.ClearNewFlag()
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*item.Item, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.items[id]
	if !ok {
		return nil, item.NewNotFoundError(id)
	}
	return item.RebuildFromDTO(dto), nil
}

func (r *ItemRepository) FindBySellerID(ctx context.Context, sellerID string) ([]*item.Item, error) {
	return r.findAll(ctx, func(dto item.ReconstructionDTO) bool {
		return dto.SellerID == sellerID
	})
}

func (r *ItemRepository) FindByState(ctx context.Context, state item.State) ([]*item.Item, error) {
	return r.findAll(ctx, func(dto item.ReconstructionDTO) bool {
		return dto.State == state
	})
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.items[id]; !ok {
		return item.NewNotFoundError(id)
	}
	delete(r.store.items, id)
	return nil
}

func (r *ItemRepository) findAll(ctx context.Context, match func(item.ReconstructionDTO) bool) ([]*item.Item, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var dtos []item.ReconstructionDTO
	for _, dto := range r.store.items {
		if match(dto) {
			dtos = append(dtos, dto)
		}
	}
	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].CreatedAt.After(dtos[j].CreatedAt)
	})

	items := make([]*item.Item, len(dtos))
	for i, dto := range dtos {
		items[i] = item.RebuildFromDTO(dto)
	}
	return items, nil
}

var _ item.Repository = (*ItemRepository)(nil)
