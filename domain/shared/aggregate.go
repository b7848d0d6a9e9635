package shared

// AggregateRoot is the entry point of a consistency boundary. Every state
// change goes through the aggregate's own methods; the version backs the
// optimistic-concurrency check at save time.
type AggregateRoot interface {
	// ID returns the aggregate's global identifier.
	ID() string

	// Version returns the optimistic-lock version loaded from storage.
	Version() int

	// PullEvents returns and clears the events recorded since load, so the
	// unit of work can persist them exactly once.
	PullEvents() []DomainEvent
}
