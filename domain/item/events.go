package item

import "time"

type ItemCreatedEvent struct {
	itemID     string
	sellerID   string
	title      string
	occurredOn time.Time
}

func NewItemCreatedEvent(itemID, sellerID, title string) *ItemCreatedEvent {
	return &ItemCreatedEvent{itemID: itemID, sellerID: sellerID, title: title, occurredOn: time.Now()}
}

func (e *ItemCreatedEvent) EventName() string     { return "item.created" }
func (e *ItemCreatedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *ItemCreatedEvent) AggregateID() string   { return e.itemID }
func (e *ItemCreatedEvent) ItemID() string        { return e.itemID }
func (e *ItemCreatedEvent) SellerID() string      { return e.sellerID }
func (e *ItemCreatedEvent) Title() string         { return e.title }

type ItemApprovedEvent struct {
	itemID     string
	occurredOn time.Time
}

func NewItemApprovedEvent(itemID string) *ItemApprovedEvent {
	return &ItemApprovedEvent{itemID: itemID, occurredOn: time.Now()}
}

func (e *ItemApprovedEvent) EventName() string     { return "item.approved" }
func (e *ItemApprovedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *ItemApprovedEvent) AggregateID() string   { return e.itemID }
func (e *ItemApprovedEvent) ItemID() string        { return e.itemID }

type ItemRejectedEvent struct {
	itemID     string
	occurredOn time.Time
}

func NewItemRejectedEvent(itemID string) *ItemRejectedEvent {
	return &ItemRejectedEvent{itemID: itemID, occurredOn: time.Now()}
}

func (e *ItemRejectedEvent) EventName() string     { return "item.rejected" }
func (e *ItemRejectedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *ItemRejectedEvent) AggregateID() string   { return e.itemID }
func (e *ItemRejectedEvent) ItemID() string        { return e.itemID }

type ItemSoldEvent struct {
	itemID     string
	occurredOn time.Time
}

func NewItemSoldEvent(itemID string) *ItemSoldEvent {
	return &ItemSoldEvent{itemID: itemID, occurredOn: time.Now()}
}

func (e *ItemSoldEvent) EventName() string     { return "item.sold" }
func (e *ItemSoldEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *ItemSoldEvent) AggregateID() string   { return e.itemID }
func (e *ItemSoldEvent) ItemID() string        { return e.itemID }
