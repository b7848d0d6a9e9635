/*
Package item orchestrates the listing lifecycle: creation, seller edits,
moderation decisions and the on/off-sale toggle.

The service never publishes events directly. Every mutation runs inside a
unit of work; the aggregate records events, the unit of work drains them into
the outbox before commit.
*/
package item

import (
	"context"

	"marketplace/domain/authz"
	"marketplace/domain/item"
	"marketplace/domain/order"
	"marketplace/domain/shared"
)

// ApplicationService coordinates listing operations.
type ApplicationService struct {
	itemRepo   item.Repository
	orderRepo  order.Repository
	uowFactory shared.UnitOfWorkFactory
}

func NewApplicationService(
	itemRepo item.Repository,
	orderRepo order.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		itemRepo:   itemRepo,
		orderRepo:  orderRepo,
		uowFactory: uowFactory,
	}
}

func forbidden(message string) error {
	return shared.NewDomainError(shared.ErrUnauthorized, "item", message)
}

// Create publishes a new listing for the actor. The listing starts PENDING
// and waits for moderation.
func (s *ApplicationService) Create(ctx context.Context, actor shared.Actor, req CreateItemRequest) (*ItemResponse, error) {
	if actor.IsZero() {
		return nil, forbidden("authentication required to create a listing")
	}

	var it *item.Item
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		it, err = item.NewItem(actor.ID, req.toContent())
		if err != nil {
			return err
		}
		if err := s.itemRepo.Save(ctx, it); err != nil {
			return err
		}
		uow.RegisterNew(it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(it), nil
}

// Update applies a seller edit. Owner only; rejected in terminal states.
func (s *ApplicationService) Update(ctx context.Context, actor shared.Actor, itemID string, req UpdateItemRequest) (*ItemResponse, error) {
	var it *item.Item
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		it, err = s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if !authz.CanPerform(actor, authz.ItemResource(it.SellerID()), authz.ActionEdit) {
			return forbidden("only the seller may edit this listing")
		}
		if err := it.UpdateContent(req.toContent()); err != nil {
			return err
		}
		if err := s.itemRepo.Save(ctx, it); err != nil {
			return err
		}
		uow.RegisterDirty(it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(it), nil
}

// Delete removes a listing. Owner only; SOLD listings and listings with an
// open order are kept.
func (s *ApplicationService) Delete(ctx context.Context, actor shared.Actor, itemID string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		it, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if !authz.CanPerform(actor, authz.ItemResource(it.SellerID()), authz.ActionDelete) {
			return forbidden("only the seller may delete this listing")
		}
		if err := it.EnsureDeletable(); err != nil {
			return err
		}
		open, err := s.orderRepo.FindOpenByItemID(ctx, itemID)
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return item.NewOpenOrderExistsError(itemID)
		}
		return s.itemRepo.Delete(ctx, itemID)
	})
}

// Deactivate hides a published listing. Owner only.
func (s *ApplicationService) Deactivate(ctx context.Context, actor shared.Actor, itemID string) (*ItemResponse, error) {
	return s.mutate(ctx, actor, itemID, authz.ActionDeactivate,
		"only the seller may deactivate this listing",
		func(it *item.Item) error { return it.Deactivate() })
}

// Reactivate republishes a hidden listing. Owner only.
func (s *ApplicationService) Reactivate(ctx context.Context, actor shared.Actor, itemID string) (*ItemResponse, error) {
	return s.mutate(ctx, actor, itemID, authz.ActionReactivate,
		"only the seller may reactivate this listing",
		func(it *item.Item) error { return it.Reactivate() })
}

// Approve publishes a pending listing. Administrator only.
func (s *ApplicationService) Approve(ctx context.Context, actor shared.Actor, itemID string) (*ItemResponse, error) {
	return s.mutate(ctx, actor, itemID, authz.ActionApprove,
		"only administrators may approve listings",
		func(it *item.Item) error { return it.Approve() })
}

// Reject declines a pending listing. Administrator only.
func (s *ApplicationService) Reject(ctx context.Context, actor shared.Actor, itemID string) (*ItemResponse, error) {
	return s.mutate(ctx, actor, itemID, authz.ActionReject,
		"only administrators may reject listings",
		func(it *item.Item) error { return it.Reject() })
}

// mutate is the shared load-guard-transition-save path. Authorization is
// checked before the state machine so a denied actor never learns whether
// the transition would have been legal.
func (s *ApplicationService) mutate(
	ctx context.Context,
	actor shared.Actor,
	itemID string,
	action authz.Action,
	denyMessage string,
	transition func(*item.Item) error,
) (*ItemResponse, error) {
	var it *item.Item
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		it, err = s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if !authz.CanPerform(actor, authz.ItemResource(it.SellerID()), action) {
			return forbidden(denyMessage)
		}
		if err := transition(it); err != nil {
			return err
		}
		if err := s.itemRepo.Save(ctx, it); err != nil {
			return err
		}
		uow.RegisterDirty(it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(it), nil
}

// GetByID returns one listing. Public read.
func (s *ApplicationService) GetByID(ctx context.Context, itemID string) (*ItemResponse, error) {
	it, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toResponse(it), nil
}

// ListOnSale returns the public catalog of purchasable listings.
func (s *ApplicationService) ListOnSale(ctx context.Context) ([]*ItemResponse, error) {
	items, err := s.itemRepo.FindByState(ctx, item.StateOnSale)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

// ListBySeller returns every listing of one seller, all states included.
func (s *ApplicationService) ListBySeller(ctx context.Context, sellerID string) ([]*ItemResponse, error) {
	items, err := s.itemRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

// ListByState returns the moderation view of one state. Administrator only.
func (s *ApplicationService) ListByState(ctx context.Context, actor shared.Actor, state string) ([]*ItemResponse, error) {
	if actor.Role != shared.RoleAdmin {
		return nil, forbidden("only administrators may list by state")
	}
	parsed, err := item.ParseState(state)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByState(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}
