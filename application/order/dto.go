package order

import (
	"time"

	"marketplace/domain/order"
)

// CreateOrderRequest opens an order against one listing. Seller and price
// are snapshotted from the listing, not supplied by the buyer.
type CreateOrderRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// MoneyResponse renders an amount in minor units with its currency.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID         string        `json:"id"`
	ItemID     string        `json:"item_id"`
	BuyerID    string        `json:"buyer_id"`
	SellerID   string        `json:"seller_id"`
	Price      MoneyResponse `json:"price"`
	State      string        `json:"state"`
	Version    int           `json:"version"`
	CreatedAt  time.Time     `json:"created_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

func toResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:       o.ID(),
		ItemID:   o.ItemID(),
		BuyerID:  o.BuyerID(),
		SellerID: o.SellerID(),
		Price: MoneyResponse{
			Amount:   o.Price().Amount(),
			Currency: o.Price().Currency(),
		},
		State:      string(o.State()),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		FinishedAt: o.FinishedAt(),
	}
}

func toResponses(orders []*order.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toResponse(o)
	}
	return responses
}
