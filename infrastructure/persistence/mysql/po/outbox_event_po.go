package po

import (
	"encoding/json"
	"time"

	"marketplace/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO stores a domain event alongside the transaction that produced
// it. A separate worker publishes PENDING rows.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`
	Payload     string    `gorm:"type:json;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus is the outbox row lifecycle.
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent converts a domain event to a pending outbox row.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.AggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// serializeEventToJSON flattens the event into a generic payload. Fields are
// probed by getter so new event types serialize without registration.
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]interface{}{
		"event_name":   event.EventName(),
		"aggregate_id": event.AggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	if g, ok := event.(interface{ OrderID() string }); ok {
		eventData["order_id"] = g.OrderID()
	}
	if g, ok := event.(interface{ ItemID() string }); ok {
		eventData["item_id"] = g.ItemID()
	}
	if g, ok := event.(interface{ BuyerID() string }); ok {
		eventData["buyer_id"] = g.BuyerID()
	}
	if g, ok := event.(interface{ SellerID() string }); ok {
		eventData["seller_id"] = g.SellerID()
	}
	if g, ok := event.(interface{ Title() string }); ok {
		eventData["title"] = g.Title()
	}
	if g, ok := event.(interface{ Price() shared.Money }); ok {
		money := g.Price()
		eventData["price_amount"] = money.Amount()
		eventData["price_currency"] = money.Currency()
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToEventData decodes the payload, mainly for tests and debugging.
func (po *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
