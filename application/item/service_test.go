package item

import (
	"context"
	"errors"
	"testing"

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
		service:   NewApplicationService(itemRepo, orderRepo, memory.NewUnitOfWorkFactory(store)),
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		store:     store,
	}
}

var (
	seller   = shared.Actor{ID: "seller-1", Role: shared.RoleUser}
	stranger = shared.Actor{ID: "stranger-1", Role: shared.RoleUser}
	admin    = shared.Actor{ID: "admin-1", Role: shared.RoleAdmin}
)

func validCreateRequest() CreateItemRequest {
	return CreateItemRequest{
		Title:    "Mountain bike",
		Price:    45000,
		Currency: "JPY",
	}
}

func mustCreate(t *testing.T, env *testEnv, actor shared.Actor) *ItemResponse {
	t.Helper()
	resp, err := env.service.Create(context.Background(), actor, validCreateRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return resp
}

func TestCreate(t *testing.T) {
	env := newTestEnv()
	resp := mustCreate(t, env, seller)

	if resp.State != string(item.StatePending) {
		t.Errorf("state = %s, want %s", resp.State, item.StatePending)
	}
	if resp.Version != 0 {
		t.Errorf("version = %d, want 0", resp.Version)
	}
	if resp.Price.Amount != 45000 || resp.Price.Currency != "JPY" {
		t.Errorf("price = %+v, want 45000 JPY", resp.Price)
	}
	if resp.SellerID != seller.ID {
		t.Errorf("seller = %s, want %s", resp.SellerID, seller.ID)
	}

	events := env.store.Events()
	if len(events) != 1 || events[0].EventName() != "item.created" {
		t.Errorf("committed events = %v, want one item.created", events)
	}
}

func TestCreateRequiresActor(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Create(context.Background(), shared.Actor{}, validCreateRequest())
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("err = %v, want unauthorized", err)
	}
}

func TestApprove(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)

	resp, err := env.service.Approve(context.Background(), admin, created.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if resp.State != string(item.StateOnSale) {
		t.Errorf("state = %s, want %s", resp.State, item.StateOnSale)
	}
	if resp.Version != 1 {
		t.Errorf("version = %d, want 1 after save", resp.Version)
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)

	// The seller owning the listing still cannot moderate it.
	_, err := env.service.Approve(context.Background(), seller, created.ID)
	if !errors.Is(err, shared.ErrUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}

	got, err := env.service.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != string(item.StatePending) {
		t.Errorf("denied approve must not change state, got %s", got.State)
	}
}

func TestRejectIsTerminal(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)

	if _, err := env.service.Reject(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	_, err := env.service.Approve(context.Background(), admin, created.ID)
	if !errors.Is(err, shared.ErrInvalidTransition) {
		t.Errorf("approve after reject: err = %v, want invalid transition", err)
	}
}

func TestUpdate(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)

	req := UpdateItemRequest{Title: "Mountain bike (price drop)", Price: 39000, Currency: "JPY"}
	resp, err := env.service.Update(context.Background(), seller, created.ID, req)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.Title != "Mountain bike (price drop)" {
		t.Errorf("title = %q", resp.Title)
	}
	if resp.Price.Amount != 39000 {
		t.Errorf("price = %d, want 39000", resp.Price.Amount)
	}
	if resp.State != string(item.StatePending) {
		t.Errorf("edit must not change state, got %s", resp.State)
	}
}

func TestUpdateOwnerOnly(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)

	req := UpdateItemRequest{Title: "hijacked", Price: 1, Currency: "JPY"}
	for _, actor := range []shared.Actor{stranger, admin} {
		_, err := env.service.Update(context.Background(), actor, created.ID, req)
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("actor %s: err = %v, want unauthorized", actor.ID, err)
		}
	}
}

func TestUpdateNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Update(context.Background(), seller, "missing", UpdateItemRequest{Title: "x", Currency: "JPY"})
	if !errors.Is(err, item.ErrItemNotFound) {
		t.Errorf("err = %v, want item not found", err)
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)

	if err := env.service.Delete(context.Background(), seller, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := env.service.GetByID(context.Background(), created.ID)
	if !errors.Is(err, item.ErrItemNotFound) {
		t.Errorf("after delete: err = %v, want item not found", err)
	}
}

func TestDeleteBlockedByOpenOrder(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)
	if _, err := env.service.Approve(context.Background(), admin, created.ID); err != nil {
		t.Fatal(err)
	}

	o, err := order.NewOrder(created.ID, "buyer-1", seller.ID, shared.NewMoney(45000, "JPY"))
	if err != nil {
		t.Fatal(err)
	}
	if err := env.orderRepo.Save(context.Background(), o); err != nil {
		t.Fatal(err)
	}

	err = env.service.Delete(context.Background(), seller, created.ID)
	if !errors.Is(err, item.ErrOpenOrderExists) {
		t.Fatalf("err = %v, want open order exists", err)
	}
	if _, err := env.service.GetByID(context.Background(), created.ID); err != nil {
		t.Errorf("blocked delete must keep the listing: %v", err)
	}
}

func TestDeleteSoldListing(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)
	if _, err := env.service.Approve(context.Background(), admin, created.ID); err != nil {
		t.Fatal(err)
	}

	it, err := env.itemRepo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := it.MarkSold(); err != nil {
		t.Fatal(err)
	}
	if err := env.itemRepo.Save(context.Background(), it); err != nil {
		t.Fatal(err)
	}

	err = env.service.Delete(context.Background(), seller, created.ID)
	if !errors.Is(err, shared.ErrInvalidTransition) {
		t.Errorf("err = %v, want invalid transition", err)
	}
}

func TestDeactivateReactivate(t *testing.T) {
	env := newTestEnv()
	created := mustCreate(t, env, seller)
	if _, err := env.service.Approve(context.Background(), admin, created.ID); err != nil {
		t.Fatal(err)
	}

	resp, err := env.service.Deactivate(context.Background(), seller, created.ID)
	if err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if resp.State != string(item.StateOffSale) {
		t.Errorf("state = %s, want %s", resp.State, item.StateOffSale)
	}

	resp, err = env.service.Reactivate(context.Background(), seller, created.ID)
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if resp.State != string(item.StateOnSale) {
		t.Errorf("state = %s, want %s", resp.State, item.StateOnSale)
	}
}

func TestListOnSale(t *testing.T) {
	env := newTestEnv()
	first := mustCreate(t, env, seller)
	mustCreate(t, env, seller)

	if _, err := env.service.Approve(context.Background(), admin, first.ID); err != nil {
		t.Fatal(err)
	}

	listed, err := env.service.ListOnSale(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != first.ID {
		t.Errorf("catalog = %v, want only the approved listing", listed)
	}
}

func TestListBySeller(t *testing.T) {
	env := newTestEnv()
	mustCreate(t, env, seller)
	mustCreate(t, env, seller)
	mustCreate(t, env, shared.Actor{ID: "other-seller", Role: shared.RoleUser})

	listed, err := env.service.ListBySeller(context.Background(), seller.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Errorf("got %d listings, want 2", len(listed))
	}
}

func TestListByState(t *testing.T) {
	env := newTestEnv()
	mustCreate(t, env, seller)

	listed, err := env.service.ListByState(context.Background(), admin, "PENDING")
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Errorf("got %d listings, want 1", len(listed))
	}

	if _, err := env.service.ListByState(context.Background(), seller, "PENDING"); !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("non-admin: err = %v, want unauthorized", err)
	}
	if _, err := env.service.ListByState(context.Background(), admin, "NONSENSE"); !errors.Is(err, shared.ErrValidation) {
		t.Errorf("bad state: err = %v, want validation", err)
	}
}
