package order

import (
	"time"

	"marketplace/domain/shared"
)

type OrderPlacedEvent struct {
	orderID    string
	itemID     string
	buyerID    string
	sellerID   string
	price      shared.Money
	occurredOn time.Time
}

func NewOrderPlacedEvent(orderID, itemID, buyerID, sellerID string, price shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:    orderID,
		itemID:     itemID,
		buyerID:    buyerID,
		sellerID:   sellerID,
		price:      price,
		occurredOn: time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string     { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderPlacedEvent) AggregateID() string   { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string       { return e.orderID }
func (e *OrderPlacedEvent) ItemID() string        { return e.itemID }
func (e *OrderPlacedEvent) BuyerID() string       { return e.buyerID }
func (e *OrderPlacedEvent) SellerID() string      { return e.sellerID }
func (e *OrderPlacedEvent) Price() shared.Money   { return e.price }

type OrderFinishedEvent struct {
	orderID    string
	itemID     string
	occurredOn time.Time
}

func NewOrderFinishedEvent(orderID, itemID string) *OrderFinishedEvent {
	return &OrderFinishedEvent{orderID: orderID, itemID: itemID, occurredOn: time.Now()}
}

func (e *OrderFinishedEvent) EventName() string     { return "order.finished" }
func (e *OrderFinishedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderFinishedEvent) AggregateID() string   { return e.orderID }
func (e *OrderFinishedEvent) OrderID() string       { return e.orderID }
func (e *OrderFinishedEvent) ItemID() string        { return e.itemID }

type OrderCancelledEvent struct {
	orderID    string
	itemID     string
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID, itemID string) *OrderCancelledEvent {
	return &OrderCancelledEvent{orderID: orderID, itemID: itemID, occurredOn: time.Now()}
}

func (e *OrderCancelledEvent) EventName() string     { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderCancelledEvent) AggregateID() string   { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string       { return e.orderID }
func (e *OrderCancelledEvent) ItemID() string        { return e.itemID }
