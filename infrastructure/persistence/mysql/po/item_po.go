// Package po holds the persistence objects mapping aggregates to tables.
// POs carry no business logic and define no GORM associations; cross-table
// references are plain ID columns.
package po

import (
	"encoding/json"
	"time"

	"marketplace/domain/item"
	"marketplace/domain/shared"
)

// ItemPO maps the item aggregate to the items table.
type ItemPO struct {
	ID                string    `gorm:"primaryKey;size:64"`
	Title             string    `gorm:"size:255;not null"`
	Description       string    `gorm:"type:text"`
	PriceAmount       int64     `gorm:"not null"`
	PriceCurrency     string    `gorm:"size:3;not null"`
	OriginalAmount    int64     `gorm:"not null"`
	OriginalCurrency  string    `gorm:"size:3;not null"`
	Category          string    `gorm:"size:64;index"`
	Condition         int       `gorm:"not null"`
	ContactInfo       string    `gorm:"size:255"`
	Location          string    `gorm:"size:255"`
	ImageURLs         string    `gorm:"type:json"` // JSON array of strings
	SellerID          string    `gorm:"size:64;index;not null"`
	State             string    `gorm:"size:20;index;not null"`
	Version           int       `gorm:"default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (ItemPO) TableName() string {
	return "items"
}

// FromItemDomain converts the aggregate to its persistence object.
func FromItemDomain(i *item.Item) (*ItemPO, error) {
	urls, err := json.Marshal(i.ImageURLs())
	if err != nil {
		return nil, err
	}
	return &ItemPO{
		ID:               i.ID(),
		Title:            i.Title(),
		Description:      i.Description(),
		PriceAmount:      i.Price().Amount(),
		PriceCurrency:    i.Price().Currency(),
		OriginalAmount:   i.OriginalPrice().Amount(),
		OriginalCurrency: i.OriginalPrice().Currency(),
		Category:         i.Category(),
		Condition:        int(i.Condition()),
		ContactInfo:      i.ContactInfo(),
		Location:         i.Location(),
		ImageURLs:        string(urls),
		SellerID:         i.SellerID(),
		State:            string(i.State()),
		Version:          i.Version(),
		CreatedAt:        i.CreatedAt(),
		UpdatedAt:        i.UpdatedAt(),
	}, nil
}

// ToDomain rebuilds the aggregate from the persistence object.
func (po *ItemPO) ToDomain() (*item.Item, error) {
	var urls []string
	if po.ImageURLs != "" {
		if err := json.Unmarshal([]byte(po.ImageURLs), &urls); err != nil {
			return nil, err
		}
	}
	return item.RebuildFromDTO(item.ReconstructionDTO{
		ID:            po.ID,
		Title:         po.Title,
		Description:   po.Description,
		Price:         shared.NewMoney(po.PriceAmount, po.PriceCurrency),
		OriginalPrice: shared.NewMoney(po.OriginalAmount, po.OriginalCurrency),
		Category:      po.Category,
		Condition:     item.Condition(po.Condition),
		ContactInfo:   po.ContactInfo,
		Location:      po.Location,
		ImageURLs:     urls,
		SellerID:      po.SellerID,
		State:         item.State(po.State),
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}), nil
}
