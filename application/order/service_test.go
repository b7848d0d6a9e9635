package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace/domain/item"
	"marketplace/domain/order"
	"marketplace/domain/shared"
	"marketplace/infrastructure/persistence/memory"
)

type testEnv struct {
	service   *ApplicationService
	itemRepo  *memory.ItemRepository
	orderRepo *memory.OrderRepository
	store     *memory.Store
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	itemRepo := memory.NewItemRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	return &testEnv{
		service:   NewApplicationService(orderRepo, itemRepo, memory.NewUnitOfWorkFactory(store)),
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		store:     store,
	}
}

var (
	seller   = shared.Actor{ID: "seller-1", Role: shared.RoleUser}
	buyer    = shared.Actor{ID: "buyer-1", Role: shared.RoleUser}
	stranger = shared.Actor{ID: "stranger-1", Role: shared.RoleUser}
	admin    = shared.Actor{ID: "admin-1", Role: shared.RoleAdmin}
)

// seedListing stores a listing for the seller in the given state.
func seedListing(t *testing.T, env *testEnv, state item.State) string {
	t.Helper()
	it, err := item.NewItem(seller.ID, item.Content{
		Title: "Film camera",
		Price: shared.NewMoney(12000, "JPY"),
	})
	if err != nil {
		t.Fatal(err)
	}
	switch state {
	case item.StatePending:
	case item.StateOnSale:
		if err := it.Approve(); err != nil {
			t.Fatal(err)
		}
	case item.StateSold:
		if err := it.Approve(); err != nil {
			t.Fatal(err)
		}
		if err := it.MarkSold(); err != nil {
			t.Fatal(err)
		}
	default:
		t.Fatalf("unhandled seed state %s", state)
	}
	if err := env.itemRepo.Save(context.Background(), it); err != nil {
		t.Fatal(err)
	}
	return it.ID()
}

func mustCreateOrder(t *testing.T, env *testEnv, actor shared.Actor, itemID string) *OrderResponse {
	t.Helper()
	resp, err := env.service.Create(context.Background(), actor, CreateOrderRequest{ItemID: itemID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return resp
}

func TestCreate(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)

	resp := mustCreateOrder(t, env, buyer, itemID)

	if resp.State != string(order.StateOpen) {
		t.Errorf("state = %s, want %s", resp.State, order.StateOpen)
	}
	if resp.BuyerID != buyer.ID || resp.SellerID != seller.ID {
		t.Errorf("parties = %s/%s, want %s/%s", resp.BuyerID, resp.SellerID, buyer.ID, seller.ID)
	}
	if resp.Price.Amount != 12000 || resp.Price.Currency != "JPY" {
		t.Errorf("price = %+v, want listing price 12000 JPY", resp.Price)
	}
	if resp.FinishedAt != nil {
		t.Error("open order must not carry a completion time")
	}

	events := env.store.Events()
	if len(events) != 1 || events[0].EventName() != "order.placed" {
		t.Errorf("committed events = %v, want one order.placed", events)
	}
}

func TestCreateSelfPurchase(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)

	_, err := env.service.Create(context.Background(), seller, CreateOrderRequest{ItemID: itemID})
	if !errors.Is(err, order.ErrSelfPurchase) {
		t.Errorf("err = %v, want self purchase", err)
	}
}

func TestCreateListingNotOnSale(t *testing.T) {
	env := newTestEnv()
	for _, state := range []item.State{item.StatePending, item.StateSold} {
		itemID := seedListing(t, env, state)
		_, err := env.service.Create(context.Background(), buyer, CreateOrderRequest{ItemID: itemID})
		if !errors.Is(err, order.ErrInvalidItemState) {
			t.Errorf("state %s: err = %v, want invalid item state", state, err)
		}
	}
}

func TestCreateSecondOpenOrder(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)
	mustCreateOrder(t, env, buyer, itemID)

	_, err := env.service.Create(context.Background(), stranger, CreateOrderRequest{ItemID: itemID})
	if !errors.Is(err, shared.ErrConflict) {
		t.Errorf("err = %v, want conflict", err)
	}
}

func TestCreateListingNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Create(context.Background(), buyer, CreateOrderRequest{ItemID: "missing"})
	if !errors.Is(err, item.ErrItemNotFound) {
		t.Errorf("err = %v, want item not found", err)
	}
}

func TestCreateRequiresActor(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Create(context.Background(), shared.Actor{}, CreateOrderRequest{ItemID: "any"})
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("err = %v, want unauthorized", err)
	}
}

func TestFinish(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)
	created := mustCreateOrder(t, env, buyer, itemID)

	resp, err := env.service.Finish(context.Background(), buyer, created.ID)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if resp.State != string(order.StateFinished) {
		t.Errorf("state = %s, want %s", resp.State, order.StateFinished)
	}
	if resp.FinishedAt == nil {
		t.Error("finished order must carry a completion time")
	}

	// The listing was sold in the same transaction.
	it, err := env.itemRepo.FindByID(context.Background(), itemID)
	if err != nil {
		t.Fatal(err)
	}
	if it.State() != item.StateSold {
		t.Errorf("item state = %s, want %s", it.State(), item.StateSold)
	}

	// And nobody can order it any more.
	_, err = env.service.Create(context.Background(), stranger, CreateOrderRequest{ItemID: itemID})
	if !errors.Is(err, order.ErrInvalidItemState) {
		t.Errorf("order after sale: err = %v, want invalid item state", err)
	}
}

func TestFinishBySeller(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)
	created := mustCreateOrder(t, env, buyer, itemID)

	if _, err := env.service.Finish(context.Background(), seller, created.ID); err != nil {
		t.Fatalf("seller finish: %v", err)
	}
}

func TestFinishParticipantsOnly(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)
	created := mustCreateOrder(t, env, buyer, itemID)

	for _, actor := range []shared.Actor{stranger, admin} {
		_, err := env.service.Finish(context.Background(), actor, created.ID)
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("actor %s: err = %v, want unauthorized", actor.ID, err)
		}
	}

	got, err := env.orderRepo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.State() != order.StateOpen {
		t.Errorf("denied finish must leave the order %s, got %s", order.StateOpen, got.State())
	}
}

func TestFinishTwice(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)
	created := mustCreateOrder(t, env, buyer, itemID)

	if _, err := env.service.Finish(context.Background(), buyer, created.ID); err != nil {
		t.Fatal(err)
	}
	_, err := env.service.Finish(context.Background(), buyer, created.ID)
	if !errors.Is(err, shared.ErrInvalidTransition) {
		t.Errorf("second finish: err = %v, want invalid transition", err)
	}
}

// TestFinishConflict races two open orders against the same listing. Exactly
// one finish commits; the loser rolls back whole, leaving its order OPEN and
// the listing sold once.
func TestFinishConflict(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)

	now := time.Now()
	price := shared.NewMoney(12000, "JPY")
	for _, dto := range []order.ReconstructionDTO{
		{ID: "order-a", ItemID: itemID, BuyerID: "buyer-a", SellerID: seller.ID, Price: price, State: order.StateOpen, CreatedAt: now},
		{ID: "order-b", ItemID: itemID, BuyerID: "buyer-b", SellerID: seller.ID, Price: price, State: order.StateOpen, CreatedAt: now},
	} {
		env.orderRepo.SeedForTest(dto)
	}

	type result struct {
		orderID string
		err     error
	}
	results := make(chan result, 2)
	var wg sync.WaitGroup
	for _, r := range []struct {
		actor   shared.Actor
		orderID string
	}{
		{shared.Actor{ID: "buyer-a", Role: shared.RoleUser}, "order-a"},
		{shared.Actor{ID: "buyer-b", Role: shared.RoleUser}, "order-b"},
	} {
		wg.Add(1)
		go func(actor shared.Actor, orderID string) {
			defer wg.Done()
			_, err := env.service.Finish(context.Background(), actor, orderID)
			results <- result{orderID: orderID, err: err}
		}(r.actor, r.orderID)
	}
	wg.Wait()
	close(results)

	var winners, losers []result
	for r := range results {
		if r.err == nil {
			winners = append(winners, r)
		} else {
			losers = append(losers, r)
		}
	}
	if len(winners) != 1 || len(losers) != 1 {
		t.Fatalf("winners = %d, losers = %d, want exactly one of each", len(winners), len(losers))
	}
	if !errors.Is(losers[0].err, order.ErrItemNoLongerAvailable) {
		t.Errorf("loser err = %v, want item no longer available", losers[0].err)
	}

	// The losing transaction rolled back: its order is still OPEN.
	lost, err := env.orderRepo.FindByID(context.Background(), losers[0].orderID)
	if err != nil {
		t.Fatal(err)
	}
	if lost.State() != order.StateOpen {
		t.Errorf("loser order state = %s, want %s", lost.State(), order.StateOpen)
	}

	it, err := env.itemRepo.FindByID(context.Background(), itemID)
	if err != nil {
		t.Fatal(err)
	}
	if it.State() != item.StateSold {
		t.Errorf("item state = %s, want %s", it.State(), item.StateSold)
	}
}

func TestCancel(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)
	created := mustCreateOrder(t, env, buyer, itemID)

	resp, err := env.service.Cancel(context.Background(), buyer, created.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if resp.State != string(order.StateCancelled) {
		t.Errorf("state = %s, want %s", resp.State, order.StateCancelled)
	}

	// The listing is untouched and immediately purchasable again.
	it, err := env.itemRepo.FindByID(context.Background(), itemID)
	if err != nil {
		t.Fatal(err)
	}
	if it.State() != item.StateOnSale {
		t.Errorf("item state = %s, want %s", it.State(), item.StateOnSale)
	}
	mustCreateOrder(t, env, stranger, itemID)
}

func TestGetByID(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, item.StateOnSale)
	created := mustCreateOrder(t, env, buyer, itemID)

	for _, actor := range []shared.Actor{buyer, seller, admin} {
		if _, err := env.service.GetByID(context.Background(), actor, created.ID); err != nil {
			t.Errorf("actor %s: %v", actor.ID, err)
		}
	}
	if _, err := env.service.GetByID(context.Background(), stranger, created.ID); !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("stranger: err = %v, want unauthorized", err)
	}
	if _, err := env.service.GetByID(context.Background(), buyer, "missing"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("missing: err = %v, want order not found", err)
	}
}

func TestListPurchasesAndSales(t *testing.T) {
	env := newTestEnv()
	first := seedListing(t, env, item.StateOnSale)
	second := seedListing(t, env, item.StateOnSale)
	mustCreateOrder(t, env, buyer, first)
	mustCreateOrder(t, env, stranger, second)

	purchases, err := env.service.ListPurchases(context.Background(), buyer)
	if err != nil {
		t.Fatal(err)
	}
	if len(purchases) != 1 || purchases[0].ItemID != first {
		t.Errorf("purchases = %v, want one order for %s", purchases, first)
	}

	sales, err := env.service.ListSales(context.Background(), seller)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 2 {
		t.Errorf("got %d sales, want 2", len(sales))
	}
}
