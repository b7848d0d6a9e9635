package shared

import "context"

// UnitOfWork owns the transactional boundary of one business operation.
// Repositories called inside Execute share the same transaction; events
// pulled from registered aggregates are written to the outbox before commit.
// A UnitOfWork instance serves a single Execute call; use a factory to
// obtain one per operation.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
}

// UnitOfWorkFactory builds a fresh unit of work per operation, keeping
// concurrent requests isolated from each other.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository stores domain events transactionally alongside the state
// change that produced them.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
