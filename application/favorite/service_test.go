package favorite

import (
	"context"
	"errors"
	"testing"

	"marketplace/domain/favorite"
	"marketplace/domain/item"
	"marketplace/domain/shared"
	"marketplace/infrastructure/persistence/memory"
)

type testEnv struct {
	service  *ApplicationService
	itemRepo *memory.ItemRepository
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	itemRepo := memory.NewItemRepository(store)
	return &testEnv{
		service:  NewApplicationService(memory.NewFavoriteRepository(store), itemRepo),
		itemRepo: itemRepo,
	}
}

var user = shared.Actor{ID: "user-1", Role: shared.RoleUser}

func seedListing(t *testing.T, env *testEnv, title string) string {
	t.Helper()
	it, err := item.NewItem("seller-1", item.Content{
		Title: title,
		Price: shared.NewMoney(800, "JPY"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := env.itemRepo.Save(context.Background(), it); err != nil {
		t.Fatal(err)
	}
	return it.ID()
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, "Paperback")

	if err := env.service.Add(context.Background(), user, itemID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	listed, err := env.service.List(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d favorites, want 1", len(listed))
	}
	got := listed[0]
	if got.ItemID != itemID {
		t.Errorf("item id = %s, want %s", got.ItemID, itemID)
	}
	if got.Item == nil {
		t.Fatal("favorite of a live listing must carry the summary")
	}
	if got.Item.Title != "Paperback" || got.Item.Price != 800 {
		t.Errorf("summary = %+v", got.Item)
	}
}

func TestAddDuplicate(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, "Paperback")

	if err := env.service.Add(context.Background(), user, itemID); err != nil {
		t.Fatal(err)
	}
	err := env.service.Add(context.Background(), user, itemID)
	if !errors.Is(err, favorite.ErrAlreadyFavorited) {
		t.Errorf("err = %v, want already favorited", err)
	}
}

func TestAddMissingListing(t *testing.T) {
	env := newTestEnv()
	err := env.service.Add(context.Background(), user, "missing")
	if !errors.Is(err, item.ErrItemNotFound) {
		t.Errorf("err = %v, want item not found", err)
	}
}

func TestRemove(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, "Paperback")

	if err := env.service.Add(context.Background(), user, itemID); err != nil {
		t.Fatal(err)
	}
	if err := env.service.Remove(context.Background(), user, itemID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	err := env.service.Remove(context.Background(), user, itemID)
	if !errors.Is(err, favorite.ErrFavoriteNotFound) {
		t.Errorf("second remove: err = %v, want favorite not found", err)
	}
}

// A listing deleted after being favorited stays in the list as a bare entry.
func TestListDeletedListing(t *testing.T) {
	env := newTestEnv()
	itemID := seedListing(t, env, "Paperback")

	if err := env.service.Add(context.Background(), user, itemID); err != nil {
		t.Fatal(err)
	}
	if err := env.itemRepo.Delete(context.Background(), itemID); err != nil {
		t.Fatal(err)
	}

	listed, err := env.service.List(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d favorites, want 1", len(listed))
	}
	if listed[0].Item != nil {
		t.Error("deleted listing must not carry a summary")
	}
}

func TestRequiresActor(t *testing.T) {
	env := newTestEnv()
	anonymous := shared.Actor{}

	if err := env.service.Add(context.Background(), anonymous, "any"); !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("Add: err = %v, want unauthorized", err)
	}
	if err := env.service.Remove(context.Background(), anonymous, "any"); !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("Remove: err = %v, want unauthorized", err)
	}
	if _, err := env.service.List(context.Background(), anonymous); !errors.Is(err, shared.ErrUnauthorized) {
		t.Errorf("List: err = %v, want unauthorized", err)
	}
}
