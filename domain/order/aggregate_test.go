package order

import (
	"errors"
	"testing"

	"marketplace/domain/shared"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("item-1", "buyer-1", "seller-1", shared.NewMoney(5000, "CNY"))
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	if o.State() != StateOpen {
		t.Errorf("new order state = %s, want %s", o.State(), StateOpen)
	}
	if o.Version() != 0 || !o.IsNew() {
		t.Error("new order should be version 0 and IsNew")
	}
	if o.FinishedAt() != nil {
		t.Error("open order must have no finish time")
	}
	if o.Price().Amount() != 5000 {
		t.Errorf("price = %d, want 5000", o.Price().Amount())
	}

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.placed" {
		t.Errorf("expected one order.placed event, got %v", events)
	}
}

func TestNewOrderSelfPurchase(t *testing.T) {
	_, err := NewOrder("item-1", "seller-1", "seller-1", shared.NewMoney(5000, "CNY"))
	if !errors.Is(err, ErrSelfPurchase) {
		t.Errorf("expected self-purchase error, got %v", err)
	}
}

func TestNewOrderValidation(t *testing.T) {
	tests := []struct {
		name                      string
		itemID, buyerID, sellerID string
	}{
		{"empty item", "", "buyer-1", "seller-1"},
		{"empty buyer", "item-1", "", "seller-1"},
		{"empty seller", "item-1", "buyer-1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.itemID, tt.buyerID, tt.sellerID, shared.NewMoney(1, "CNY"))
			if !errors.Is(err, shared.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFinish(t *testing.T) {
	o := newTestOrder(t)
	o.PullEvents()

	if err := o.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if o.State() != StateFinished {
		t.Errorf("state = %s, want %s", o.State(), StateFinished)
	}
	if o.FinishedAt() == nil {
		t.Error("finished order must carry a finish time")
	}

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.finished" {
		t.Errorf("expected order.finished event, got %v", events)
	}

	// Terminal: neither finish nor cancel may run again.
	if err := o.Finish(); !errors.Is(err, shared.ErrInvalidTransition) {
		t.Errorf("second Finish: expected invalid transition, got %v", err)
	}
	if err := o.Cancel(); !errors.Is(err, shared.ErrInvalidTransition) {
		t.Errorf("Cancel after Finish: expected invalid transition, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	o := newTestOrder(t)
	o.PullEvents()

	if err := o.Cancel(); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if o.State() != StateCancelled {
		t.Errorf("state = %s, want %s", o.State(), StateCancelled)
	}
	if o.FinishedAt() == nil {
		t.Error("cancelled order must carry a completion time")
	}

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.cancelled" {
		t.Errorf("expected order.cancelled event, got %v", events)
	}

	if err := o.Finish(); !errors.Is(err, shared.ErrInvalidTransition) {
		t.Errorf("Finish after Cancel: expected invalid transition, got %v", err)
	}
}

func TestIsParticipant(t *testing.T) {
	o := newTestOrder(t)

	if !o.IsParticipant("buyer-1") || !o.IsParticipant("seller-1") {
		t.Error("buyer and seller are participants")
	}
	if o.IsParticipant("stranger") || o.IsParticipant("") {
		t.Error("strangers and empty IDs are not participants")
	}
}

func TestFinishedAtReturnsCopy(t *testing.T) {
	o := newTestOrder(t)
	if err := o.Finish(); err != nil {
		t.Fatal(err)
	}

	first := o.FinishedAt()
	*first = first.AddDate(1, 0, 0)
	if o.FinishedAt().Equal(*first) {
		t.Error("FinishedAt must return a copy, not alias internal state")
	}
}
