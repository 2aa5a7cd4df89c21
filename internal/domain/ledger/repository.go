package ledger

import "context"

// Repository defines the interface for ledger persistence operations
type Repository interface {
	// Create appends a new entry
	Create(ctx context.Context, entry *Entry) error

	// Get retrieves an entry by ID
	Get(ctx context.Context, id string) (*Entry, error)

	// ListByOwner retrieves an owner's entries ordered by creation time
	// then insertion order
	ListByOwner(ctx context.Context, ownerID string) ([]*Entry, error)

	// GetByOwnerAndMemo retrieves an owner's entry with an exact memo,
	// if present. Used as the query-before-insert idempotency check for
	// deterministic markers such as fine invoices.
	GetByOwnerAndMemo(ctx context.Context, ownerID, memo string) (*Entry, error)
}

// FineScheduleRepository persists fine schedules
type FineScheduleRepository interface {
	// Get retrieves a fine schedule by ID
	Get(ctx context.Context, id string) (*FineSchedule, error)

	// Create creates a new fine schedule
	Create(ctx context.Context, schedule *FineSchedule) error
}
