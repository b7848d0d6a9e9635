/*
Package order coordinates the purchase flow across the order and item
aggregates.

Finish is the two-aggregate commit: the order moves to FINISHED and the
listing moves to SOLD inside one unit of work. Either both rows change or
neither does. Concurrent finishes against the same listing are decided by the
versioned save of the listing: one transaction commits, the other rolls back
with a conflict that is never retried internally.
*/
package order

import (
	"context"
	"errors"

	"marketplace/domain/authz"
	"marketplace/domain/item"
	"marketplace/domain/order"
	"marketplace/domain/shared"
)

// ApplicationService coordinates order operations.
type ApplicationService struct {
	orderRepo  order.Repository
	itemRepo   item.Repository
	uowFactory shared.UnitOfWorkFactory
}

func NewApplicationService(
	orderRepo order.Repository,
	itemRepo item.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		uowFactory: uowFactory,
	}
}

func forbidden(message string) error {
	return shared.NewDomainError(shared.ErrUnauthorized, "order", message)
}

// Create opens an order for the actor against one listing. The listing must
// be ON_SALE, must not belong to the actor, and must not already carry an
// open order. Seller and price are copied from the listing at this moment;
// later edits do not follow.
func (s *ApplicationService) Create(ctx context.Context, actor shared.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	if actor.IsZero() {
		return nil, forbidden("authentication required to place an order")
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		it, err := s.itemRepo.FindByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if actor.ID == it.SellerID() {
			return order.NewSelfPurchaseError(it.ID(), actor.ID)
		}
		if !authz.CanPerform(actor, authz.ItemResource(it.SellerID()), authz.ActionCreateOrder) {
			return forbidden("actor may not order this listing")
		}
		if it.State() != item.StateOnSale {
			return order.NewInvalidItemStateError(it.ID(), string(it.State()))
		}

		open, err := s.orderRepo.FindOpenByItemID(ctx, it.ID())
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return order.NewOpenOrderExistsError(it.ID())
		}

		o, err = order.NewOrder(it.ID(), actor.ID, it.SellerID(), it.Price())
		if err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

// Finish completes an open order and marks the listing SOLD, atomically.
// Buyer or seller may finish. A listing that already left the sellable
// states aborts the whole transaction.
func (s *ApplicationService) Finish(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !authz.CanPerform(actor, authz.OrderResource(o.BuyerID(), o.SellerID()), authz.ActionFinish) {
			return forbidden("only the buyer or seller may finish this order")
		}
		if err := o.Finish(); err != nil {
			return err
		}

		it, err := s.itemRepo.FindByID(ctx, o.ItemID())
		if err != nil {
			if errors.Is(err, item.ErrItemNotFound) {
				return order.NewItemNoLongerAvailableError(o.ID(), o.ItemID())
			}
			return err
		}
		if err := it.MarkSold(); err != nil {
			if errors.Is(err, shared.ErrInvalidTransition) {
				return order.NewItemNoLongerAvailableError(o.ID(), it.ID())
			}
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := s.itemRepo.Save(ctx, it); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		uow.RegisterDirty(it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

// Cancel backs out of an open order. Buyer or seller may cancel; the listing
// is untouched and stays purchasable.
func (s *ApplicationService) Cancel(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !authz.CanPerform(actor, authz.OrderResource(o.BuyerID(), o.SellerID()), authz.ActionCancel) {
			return forbidden("only the buyer or seller may cancel this order")
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

// GetByID returns one order. Participants and administrators only.
func (s *ApplicationService) GetByID(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role != shared.RoleAdmin && !o.IsParticipant(actor.ID) {
		return nil, forbidden("only participants may view this order")
	}
	return toResponse(o), nil
}

// ListPurchases returns the actor's orders as buyer, newest first.
func (s *ApplicationService) ListPurchases(ctx context.Context, actor shared.Actor) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByBuyerID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

// ListSales returns the actor's orders as seller, newest first.
func (s *ApplicationService) ListSales(ctx context.Context, actor shared.Actor) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindBySellerID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}
