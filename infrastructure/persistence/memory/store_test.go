package memory

import (
	"context"
	"errors"
	"testing"

	"marketplace/domain/item"
	"marketplace/domain/shared"
)

func newStoredItem(t *testing.T, repo *ItemRepository) string {
	t.Helper()
	it, err := item.NewItem("seller-1", item.Content{
		Title: "Desk lamp",
		Price: shared.NewMoney(3000, "JPY"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(context.Background(), it); err != nil {
		t.Fatal(err)
	}
	return it.ID()
}

func TestSaveVersioning(t *testing.T) {
	store := NewStore()
	repo := NewItemRepository(store)
	id := newStoredItem(t, repo)

	it, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if it.Version() != 0 {
		t.Fatalf("stored version = %d, want 0", it.Version())
	}
	if err := it.Approve(); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(context.Background(), it); err != nil {
		t.Fatal(err)
	}
	if it.Version() != 1 {
		t.Errorf("version after save = %d, want 1", it.Version())
	}
}

// TestSaveStaleVersion loads the same listing twice; the second save carries
// a stale version and must lose.
func TestSaveStaleVersion(t *testing.T) {
	store := NewStore()
	repo := NewItemRepository(store)
	id := newStoredItem(t, repo)

	first, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}

	if err := first.Approve(); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(context.Background(), first); err != nil {
		t.Fatal(err)
	}

	if err := second.Approve(); err != nil {
		t.Fatal(err)
	}
	err = repo.Save(context.Background(), second)
	if !errors.Is(err, item.ErrConcurrentModification) {
		t.Errorf("stale save: err = %v, want concurrent modification", err)
	}

	// The winner's write is intact.
	got, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State() != item.StateOnSale || got.Version() != 1 {
		t.Errorf("stored = %s v%d, want %s v1", got.State(), got.Version(), item.StateOnSale)
	}
}

func TestSaveDeletedItem(t *testing.T) {
	store := NewStore()
	repo := NewItemRepository(store)
	id := newStoredItem(t, repo)

	it, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatal(err)
	}

	if err := it.Approve(); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(context.Background(), it); !errors.Is(err, item.ErrItemNotFound) {
		t.Errorf("err = %v, want item not found", err)
	}
}

func TestUnitOfWorkRollback(t *testing.T) {
	store := NewStore()
	repo := NewItemRepository(store)
	id := newStoredItem(t, repo)

	boom := errors.New("boom")
	uow := NewUnitOfWork(store)
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		it, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := it.Approve(); err != nil {
			return err
		}
		if err := repo.Save(ctx, it); err != nil {
			return err
		}
		uow.RegisterDirty(it)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	// The save inside the failed transaction is gone.
	got, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State() != item.StatePending || got.Version() != 0 {
		t.Errorf("stored = %s v%d, want %s v0 after rollback", got.State(), got.Version(), item.StatePending)
	}
	if events := store.Events(); len(events) != 0 {
		t.Errorf("rolled-back transaction committed %d events", len(events))
	}
}

func TestUnitOfWorkCommitDrainsEvents(t *testing.T) {
	store := NewStore()
	repo := NewItemRepository(store)

	uow := NewUnitOfWork(store)
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		it, err := item.NewItem("seller-1", item.Content{
			Title: "Desk lamp",
			Price: shared.NewMoney(3000, "JPY"),
		})
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, it); err != nil {
			return err
		}
		uow.RegisterNew(it)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	events := store.Events()
	if len(events) != 1 || events[0].EventName() != "item.created" {
		t.Errorf("events = %v, want one item.created", events)
	}
}
