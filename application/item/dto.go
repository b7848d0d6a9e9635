package item

import (
	"time"

	"marketplace/domain/item"
	"marketplace/domain/shared"
)

// CreateItemRequest is the payload for publishing a new listing. The listing
// starts PENDING and becomes visible after moderation.
type CreateItemRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" binding:"min=0"`
	Currency      string   `json:"currency"`
	OriginalPrice *int64   `json:"original_price"`
	Category      string   `json:"category"`
	Condition     int      `json:"condition"`
	ContactInfo   string   `json:"contact_info"`
	Location      string   `json:"location"`
	ImageURLs     []string `json:"image_urls"`
}

// UpdateItemRequest is the payload for a seller edit. Optional fields keep
// their stored value when omitted.
type UpdateItemRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" binding:"min=0"`
	Currency      string   `json:"currency"`
	OriginalPrice *int64   `json:"original_price"`
	Category      string   `json:"category"`
	Condition     int      `json:"condition"`
	ContactInfo   string   `json:"contact_info"`
	Location      string   `json:"location"`
	ImageURLs     []string `json:"image_urls"`
}

// MoneyResponse renders an amount in minor units with its currency.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ItemResponse is the read model of a listing.
type ItemResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Price         MoneyResponse `json:"price"`
	OriginalPrice MoneyResponse `json:"original_price"`
	Category      string        `json:"category"`
	Condition     int           `json:"condition"`
	ContactInfo   string        `json:"contact_info"`
	Location      string        `json:"location"`
	ImageURLs     []string      `json:"image_urls"`
	SellerID      string        `json:"seller_id"`
	State         string        `json:"state"`
	Version       int           `json:"version"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func toContent(title, description string, price int64, currency string, originalPrice *int64, category string, condition int, contactInfo, location string, imageURLs []string) item.Content {
	content := item.Content{
		Title:       title,
		Description: description,
		Price:       shared.NewMoney(price, currency),
		Category:    category,
		Condition:   item.Condition(condition),
		ContactInfo: contactInfo,
		Location:    location,
		ImageURLs:   imageURLs,
	}
	if originalPrice != nil {
		op := shared.NewMoney(*originalPrice, currency)
		content.OriginalPrice = &op
	}
	return content
}

func (req CreateItemRequest) toContent() item.Content {
	return toContent(req.Title, req.Description, req.Price, req.Currency, req.OriginalPrice,
		req.Category, req.Condition, req.ContactInfo, req.Location, req.ImageURLs)
}

func (req UpdateItemRequest) toContent() item.Content {
	return toContent(req.Title, req.Description, req.Price, req.Currency, req.OriginalPrice,
		req.Category, req.Condition, req.ContactInfo, req.Location, req.ImageURLs)
}

func toResponse(it *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:          it.ID(),
		Title:       it.Title(),
		Description: it.Description(),
		Price: MoneyResponse{
			Amount:   it.Price().Amount(),
			Currency: it.Price().Currency(),
		},
		OriginalPrice: MoneyResponse{
			Amount:   it.OriginalPrice().Amount(),
			Currency: it.OriginalPrice().Currency(),
		},
		Category:    it.Category(),
		Condition:   int(it.Condition()),
		ContactInfo: it.ContactInfo(),
		Location:    it.Location(),
		ImageURLs:   it.ImageURLs(),
		SellerID:    it.SellerID(),
		State:       string(it.State()),
		Version:     it.Version(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toResponses(items []*item.Item) []*ItemResponse {
	responses := make([]*ItemResponse, len(items))
	for i, it := range items {
		responses[i] = toResponse(it)
	}
	return responses
}
