package violation

import "context"

// Repository defines the interface for violation persistence operations
type Repository interface {
	// Create creates a new violation
	Create(ctx context.Context, violation *Violation) error

	// Get retrieves a violation by ID
	Get(ctx context.Context, id string) (*Violation, error)

	// Update updates an existing violation
	Update(ctx context.Context, violation *Violation) error

	// ListByOwner retrieves violations opened against an owner
	ListByOwner(ctx context.Context, ownerID string) ([]*Violation, error)
}

// NoticeRepository persists generated notices. Notices are immutable
// once created.
type NoticeRepository interface {
	// Create creates a new notice
	Create(ctx context.Context, notice *Notice) error

	// ListByViolation retrieves notices for a violation, oldest first
	ListByViolation(ctx context.Context, violationID string) ([]*Notice, error)
}

// AppealRepository persists owner appeals
type AppealRepository interface {
	// Create creates a new appeal
	Create(ctx context.Context, appeal *Appeal) error

	// Get retrieves an appeal by ID
	Get(ctx context.Context, id string) (*Appeal, error)

	// Update updates an existing appeal
	Update(ctx context.Context, appeal *Appeal) error

	// ListByViolation retrieves appeals for a violation
	ListByViolation(ctx context.Context, violationID string) ([]*Appeal, error)
}
