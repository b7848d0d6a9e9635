/*
Package item contains the listing aggregate and its lifecycle state machine.

A listing starts PENDING and becomes publicly visible only after an
administrator approves it. The seller can toggle visibility between ON_SALE
and OFF_SALE; only the transaction coordinator may move a listing to SOLD,
and only as part of finishing an order. REJECTED and SOLD are terminal.
*/
package item

import (
	"fmt"
	"strings"
	"time"

	"marketplace/domain/shared"

	"github.com/google/uuid"
)

// State is the listing lifecycle state.
type State string

const (
	StatePending  State = "PENDING"
	StateOnSale   State = "ON_SALE"
	StateOffSale  State = "OFF_SALE"
	StateSold     State = "SOLD"
	StateRejected State = "REJECTED"
)

// transitions is the complete walk table; anything absent is invalid.
var transitions = map[State][]State{
	StatePending: {StateOnSale, StateRejected},
	StateOnSale:  {StateOffSale, StateSold},
	StateOffSale: {StateOnSale, StateSold},
}

func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the state has no outgoing transitions.
func (s State) Terminal() bool {
	return s == StateSold || s == StateRejected
}

// ParseState validates a wire-level state string.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StatePending, StateOnSale, StateOffSale, StateSold, StateRejected:
		return State(s), nil
	}
	return "", shared.NewValidationError("item", "state", "unknown item state: "+s)
}

// Condition is the seller-declared condition code.
type Condition int

const (
	ConditionNew  Condition = 1
	ConditionGood Condition = 2
	ConditionFair Condition = 3
)

func (c Condition) valid() bool {
	return c >= ConditionNew && c <= ConditionFair
}

// Content is the seller-editable portion of a listing.
type Content struct {
	Title         string
	Description   string
	Price         shared.Money
	OriginalPrice *shared.Money // defaults to Price when nil
	Category      string        // defaults to "default" when empty
	Condition     Condition     // defaults to ConditionGood when zero
	ContactInfo   string
	Location      string
	ImageURLs     []string
}

func (c Content) validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return shared.NewValidationError("item", "title", "title must not be blank")
	}
	if c.Price.IsNegative() {
		return shared.NewValidationError("item", "price", "price must not be negative")
	}
	if c.OriginalPrice != nil && c.OriginalPrice.IsNegative() {
		return shared.NewValidationError("item", "original_price", "original price must not be negative")
	}
	if c.Condition != 0 && !c.Condition.valid() {
		return shared.NewValidationError("item", "condition", fmt.Sprintf("unknown condition code: %d", int(c.Condition)))
	}
	return nil
}

// Item is the listing aggregate root. All fields are private; state changes
// go through the lifecycle methods below, which record domain events. The
// version is managed by the persistence layer (incremented after a
// successful save, checked on every update).
type Item struct {
	id            string
	title         string
	description   string
	price         shared.Money
	originalPrice shared.Money
	category      string
	condition     Condition
	contactInfo   string
	location      string
	imageURLs     []string
	sellerID      string
	state         State
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewItem creates a listing in PENDING state owned by sellerID.
func NewItem(sellerID string, c Content) (*Item, error) {
	if sellerID == "" {
		return nil, shared.NewValidationError("item", "seller_id", "seller ID must not be empty")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate item ID: %w", err)
	}

	originalPrice := c.Price
	if c.OriginalPrice != nil {
		originalPrice = *c.OriginalPrice
	}
	category := c.Category
	if category == "" {
		category = "default"
	}
	condition := c.Condition
	if condition == 0 {
		condition = ConditionGood
	}

	now := time.Now()
	it := &Item{
		id:            id.String(),
		title:         strings.TrimSpace(c.Title),
		description:   c.Description,
		price:         c.Price,
		originalPrice: originalPrice,
		category:      category,
		condition:     condition,
		contactInfo:   c.ContactInfo,
		location:      c.Location,
		imageURLs:     append([]string(nil), c.ImageURLs...),
		sellerID:      sellerID,
		state:         StatePending,
		version:       0,
		createdAt:     now,
		updatedAt:     now,
		isNew:         true,
	}
	it.events = append(it.events, NewItemCreatedEvent(it.id, sellerID, it.title))
	return it, nil
}

// transition moves the listing to the target state or fails with an
// invalid-transition error naming both states.
func (i *Item) transition(to State) error {
	if !canTransition(i.state, to) {
		return NewInvalidTransitionError(i.id, i.state, to)
	}
	i.state = to
	i.updatedAt = time.Now()
	return nil
}

// Approve publishes a pending listing. Moderation decision; the caller must
// have verified the actor is an administrator.
func (i *Item) Approve() error {
	if err := i.transition(StateOnSale); err != nil {
		return err
	}
	i.events = append(i.events, NewItemApprovedEvent(i.id))
	return nil
}

// Reject declines a pending listing. Terminal; the owner may delete the
// listing and resubmit.
func (i *Item) Reject() error {
	if err := i.transition(StateRejected); err != nil {
		return err
	}
	i.events = append(i.events, NewItemRejectedEvent(i.id))
	return nil
}

// Deactivate hides a published listing (seller-controlled toggle).
func (i *Item) Deactivate() error {
	if i.state != StateOnSale {
		return NewInvalidTransitionError(i.id, i.state, StateOffSale)
	}
	return i.transition(StateOffSale)
}

// Reactivate republishes a hidden listing.
func (i *Item) Reactivate() error {
	if i.state != StateOffSale {
		return NewInvalidTransitionError(i.id, i.state, StateOnSale)
	}
	return i.transition(StateOnSale)
}

// MarkSold moves the listing to SOLD. Reached only from ON_SALE or OFF_SALE
// and only via the order coordinator's finish path.
func (i *Item) MarkSold() error {
	if err := i.transition(StateSold); err != nil {
		return err
	}
	i.events = append(i.events, NewItemSoldEvent(i.id))
	return nil
}

// UpdateContent applies a seller edit. Allowed in any non-terminal state;
// never changes the lifecycle state.
func (i *Item) UpdateContent(c Content) error {
	if i.state.Terminal() {
		return NewTerminalStateError(i.id, i.state)
	}
	if err := c.validate(); err != nil {
		return err
	}

	i.title = strings.TrimSpace(c.Title)
	i.description = c.Description
	i.price = c.Price
	if c.OriginalPrice != nil {
		i.originalPrice = *c.OriginalPrice
	}
	if c.Category != "" {
		i.category = c.Category
	}
	if c.Condition != 0 {
		i.condition = c.Condition
	}
	if c.ContactInfo != "" {
		i.contactInfo = c.ContactInfo
	}
	if c.Location != "" {
		i.location = c.Location
	}
	if c.ImageURLs != nil {
		i.imageURLs = append([]string(nil), c.ImageURLs...)
	}
	i.updatedAt = time.Now()
	return nil
}

// EnsureDeletable rejects deletion of SOLD listings; order history must
// keep its item reference. The open-order precondition is checked by the
// application service, which can see the order side.
func (i *Item) EnsureDeletable() error {
	if i.state == StateSold {
		return NewTerminalStateError(i.id, i.state)
	}
	return nil
}

// IncrementVersionForSave is called by the repository after a successful
// optimistic-locked update.
func (i *Item) IncrementVersionForSave() {
	i.version++
}

// ClearNewFlag is called by the repository after the first insert.
func (i *Item) ClearNewFlag() {
	i.isNew = false
}

func (i *Item) ID() string                  { return i.id }
func (i *Item) Title() string               { return i.title }
func (i *Item) Description() string         { return i.description }
func (i *Item) Price() shared.Money         { return i.price }
func (i *Item) OriginalPrice() shared.Money { return i.originalPrice }
func (i *Item) Category() string            { return i.category }
func (i *Item) Condition() Condition        { return i.condition }
func (i *Item) ContactInfo() string         { return i.contactInfo }
func (i *Item) Location() string            { return i.location }
func (i *Item) SellerID() string            { return i.sellerID }
func (i *Item) State() State                { return i.state }
func (i *Item) Version() int                { return i.version }
func (i *Item) CreatedAt() time.Time        { return i.createdAt }
func (i *Item) UpdatedAt() time.Time        { return i.updatedAt }
func (i *Item) IsNew() bool                 { return i.isNew }

// ImageURLs returns a copy of the image references.
func (i *Item) ImageURLs() []string {
	return append([]string(nil), i.imageURLs...)
}

// PullEvents returns and clears the recorded events.
func (i *Item) PullEvents() []shared.DomainEvent {
	events := i.events
	i.events = nil
	return events
}

// ReconstructionDTO rebuilds an Item from storage. Repository use only.
type ReconstructionDTO struct {
	ID            string
	Title         string
	Description   string
	Price         shared.Money
	OriginalPrice shared.Money
	Category      string
	Condition     Condition
	ContactInfo   string
	Location      string
	ImageURLs     []string
	SellerID      string
	State         State
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO reconstructs the aggregate without validation or events.
func RebuildFromDTO(dto ReconstructionDTO) *Item {
	return &Item{
		id:            dto.ID,
		title:         dto.Title,
		description:   dto.Description,
		price:         dto.Price,
		originalPrice: dto.OriginalPrice,
		category:      dto.Category,
		condition:     dto.Condition,
		contactInfo:   dto.ContactInfo,
		location:      dto.Location,
		imageURLs:     dto.ImageURLs,
		sellerID:      dto.SellerID,
		state:         dto.State,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

var _ shared.AggregateRoot = (*Item)(nil)
