/*
Package order contains the transaction aggregate binding one buyer to one
seller's listing.

An order is OPEN from creation until either party finishes or cancels it.
Both terminal transitions record a completion timestamp. Finishing an order
also sells the listing; that cross-aggregate step belongs to the
application-layer coordinator, not to this package.
*/
package order

import (
	"fmt"
	"time"

	"marketplace/domain/shared"

	"github.com/google/uuid"
)

// State is the order lifecycle state.
type State string

const (
	StateOpen      State = "OPEN"
	StateFinished  State = "FINISHED"
	StateCancelled State = "CANCELLED"
)

// Terminal reports whether the state has no outgoing transitions.
func (s State) Terminal() bool {
	return s == StateFinished || s == StateCancelled
}

// Order is the aggregate root of one transaction. The seller ID and price
// are copied from the item at creation time and never change afterwards,
// insulating the order from later listing edits.
type Order struct {
	id         string
	itemID     string
	buyerID    string
	sellerID   string
	price      shared.Money
	state      State
	version    int
	createdAt  time.Time
	finishedAt *time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewOrder creates an OPEN order for the given item. The buyer must differ
// from the seller; the item-state precondition is the coordinator's job
// because it requires the item aggregate.
func NewOrder(itemID, buyerID, sellerID string, price shared.Money) (*Order, error) {
	if itemID == "" {
		return nil, shared.NewValidationError("order", "item_id", "item ID must not be empty")
	}
	if buyerID == "" {
		return nil, shared.NewValidationError("order", "buyer_id", "buyer ID must not be empty")
	}
	if sellerID == "" {
		return nil, shared.NewValidationError("order", "seller_id", "seller ID must not be empty")
	}
	if buyerID == sellerID {
		return nil, NewSelfPurchaseError(itemID, buyerID)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	o := &Order{
		id:        id.String(),
		itemID:    itemID,
		buyerID:   buyerID,
		sellerID:  sellerID,
		price:     price,
		state:     StateOpen,
		version:   0,
		createdAt: time.Now(),
		isNew:     true,
	}
	o.events = append(o.events, NewOrderPlacedEvent(o.id, itemID, buyerID, sellerID, price))
	return o, nil
}

// Finish completes the order cooperatively. Only valid while OPEN.
func (o *Order) Finish() error {
	if o.state != StateOpen {
		return NewInvalidTransitionError(o.id, o.state, StateFinished)
	}
	now := time.Now()
	o.state = StateFinished
	o.finishedAt = &now
	o.events = append(o.events, NewOrderFinishedEvent(o.id, o.itemID))
	return nil
}

// Cancel backs out of the order. Only valid while OPEN; the listing is not
// touched, so it stays purchasable by another buyer.
func (o *Order) Cancel() error {
	if o.state != StateOpen {
		return NewInvalidTransitionError(o.id, o.state, StateCancelled)
	}
	now := time.Now()
	o.state = StateCancelled
	o.finishedAt = &now
	o.events = append(o.events, NewOrderCancelledEvent(o.id, o.itemID))
	return nil
}

// IsParticipant reports whether the actor is this order's buyer or seller.
func (o *Order) IsParticipant(actorID string) bool {
	return actorID != "" && (actorID == o.buyerID || actorID == o.sellerID)
}

// IncrementVersionForSave is called by the repository after a successful
// optimistic-locked update.
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// ClearNewFlag is called by the repository after the first insert.
func (o *Order) ClearNewFlag() {
	o.isNew = false
}

func (o *Order) ID() string           { return o.id }
func (o *Order) ItemID() string       { return o.itemID }
func (o *Order) BuyerID() string      { return o.buyerID }
func (o *Order) SellerID() string     { return o.sellerID }
func (o *Order) Price() shared.Money  { return o.price }
func (o *Order) State() State         { return o.state }
func (o *Order) Version() int         { return o.version }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) IsNew() bool          { return o.isNew }

// FinishedAt returns the completion timestamp, nil while OPEN.
func (o *Order) FinishedAt() *time.Time {
	if o.finishedAt == nil {
		return nil
	}
	t := *o.finishedAt
	return &t
}

// PullEvents returns and clears the recorded events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

// ReconstructionDTO rebuilds an Order from storage. Repository use only.
type ReconstructionDTO struct {
	ID         string
	ItemID     string
	BuyerID    string
	SellerID   string
	Price      shared.Money
	State      State
	Version    int
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// RebuildFromDTO reconstructs the aggregate without validation or events.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:         dto.ID,
		itemID:     dto.ItemID,
		buyerID:    dto.BuyerID,
		sellerID:   dto.SellerID,
		price:      dto.Price,
		state:      dto.State,
		version:    dto.Version,
		createdAt:  dto.CreatedAt,
		finishedAt: dto.FinishedAt,
	}
}

var _ shared.AggregateRoot = (*Order)(nil)
