package arc

import "context"

// Repository defines the interface for ARC request persistence operations
type Repository interface {
	// Create creates a new request
	Create(ctx context.Context, request *Request) error

	// Get retrieves a request by ID
	Get(ctx context.Context, id string) (*Request, error)

	// Update updates an existing request
	Update(ctx context.Context, request *Request) error

	// ListByOwner retrieves requests submitted for an owner
	ListByOwner(ctx context.Context, ownerID string) ([]*Request, error)
}

// ReviewRepository persists reviewer verdicts, one per (request, reviewer)
type ReviewRepository interface {
	// Upsert inserts or replaces the reviewer's verdict for the request
	Upsert(ctx context.Context, review *Review) error

	// GetByRequestAndReviewer retrieves a reviewer's verdict, if recorded
	GetByRequestAndReviewer(ctx context.Context, requestID, reviewerID string) (*Review, error)

	// ListByRequest retrieves all verdicts recorded for a request
	ListByRequest(ctx context.Context, requestID string) ([]*Review, error)
}

// ConditionRepository persists approval conditions
type ConditionRepository interface {
	// Create creates a new condition
	Create(ctx context.Context, condition *Condition) error

	// Get retrieves a condition by ID
	Get(ctx context.Context, id string) (*Condition, error)

	// Update updates an existing condition
	Update(ctx context.Context, condition *Condition) error

	// ListByRequest retrieves conditions attached to a request
	ListByRequest(ctx context.Context, requestID string) ([]*Condition, error)
}
