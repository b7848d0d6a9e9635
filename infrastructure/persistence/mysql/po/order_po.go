package po

import (
	"time"

	"marketplace/domain/order"
	"marketplace/domain/shared"
)

// OrderPO maps the order aggregate to the orders table. Seller and price are
// snapshots taken at order creation; they do not follow later item edits.
type OrderPO struct {
	ID            string     `gorm:"primaryKey;size:64"`
	ItemID        string     `gorm:"size:64;index;not null"`
	BuyerID       string     `gorm:"size:64;index;not null"`
	SellerID      string     `gorm:"size:64;index;not null"`
	PriceAmount   int64      `gorm:"not null"`
	PriceCurrency string     `gorm:"size:3;not null"`
	State         string     `gorm:"size:20;index;not null"`
	Version       int        `gorm:"default:0"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	FinishedAt    *time.Time `gorm:""`
}

func (OrderPO) TableName() string {
	return "orders"
}

// FromOrderDomain converts the aggregate to its persistence object.
func FromOrderDomain(o *order.Order) *OrderPO {
	return &OrderPO{
		ID:            o.ID(),
		ItemID:        o.ItemID(),
		BuyerID:       o.BuyerID(),
		SellerID:      o.SellerID(),
		PriceAmount:   o.Price().Amount(),
		PriceCurrency: o.Price().Currency(),
		State:         string(o.State()),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		FinishedAt:    o.FinishedAt(),
	}
}

// ToDomain rebuilds the aggregate from the persistence object.
func (po *OrderPO) ToDomain() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         po.ID,
		ItemID:     po.ItemID,
		BuyerID:    po.BuyerID,
		SellerID:   po.SellerID,
		Price:      shared.NewMoney(po.PriceAmount, po.PriceCurrency),
		State:      order.State(po.State),
		Version:    po.Version,
		CreatedAt:  po.CreatedAt,
		FinishedAt: po.FinishedAt,
	})
}
