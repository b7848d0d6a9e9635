// Package memory is an in-process storage backend. It backs the
// database.type "memory" mode and the application-service tests; semantics
// (optimistic locking, transactional rollback) match the MySQL backend.
package memory

import (
	"sync"

	"marketplace/domain/favorite"
	"marketplace/domain/item"
	"marketplace/domain/order"
	"marketplace/domain/shared"
)

type favoriteKey struct {
	userID string
	itemID string
}

// Store holds all aggregate snapshots. Repositories share one Store; the
// unit of work snapshots and restores it to emulate transactions.
type Store struct {
	mu sync.RWMutex
	// txMu serializes Execute calls so snapshot/restore pairs never
	// interleave.
	txMu sync.Mutex

	items     map[string]item.ReconstructionDTO
	orders    map[string]order.ReconstructionDTO
	favorites map[favoriteKey]favorite.Favorite

	events []shared.DomainEvent
}

func NewStore() *Store {
	return &Store{
		items:     make(map[string]item.ReconstructionDTO),
		orders:    make(map[string]order.ReconstructionDTO),
		favorites: make(map[favoriteKey]favorite.Favorite),
	}
}

// Events returns a copy of every event committed so far.
func (s *Store) Events() []shared.DomainEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.DomainEvent(nil), s.events...)
}

type storeSnapshot struct {
	items     map[string]item.ReconstructionDTO
	orders    map[string]order.ReconstructionDTO
	favorites map[favoriteKey]favorite.Favorite
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := storeSnapshot{
		items:     make(map[string]item.ReconstructionDTO, len(s.items)),
		orders:    make(map[string]order.ReconstructionDTO, len(s.orders)),
		favorites: make(map[favoriteKey]favorite.Favorite, len(s.favorites)),
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.favorites {
		snap.favorites[k] = v
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.orders = snap.orders
	s.favorites = snap.favorites
}

func (s *Store) appendEvents(events []shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}
