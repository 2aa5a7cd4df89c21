package owner

import "context"

// Repository defines the interface for owner persistence operations
type Repository interface {
	// Create creates a new owner
	Create(ctx context.Context, owner *Owner) error

	// Get retrieves an owner by ID
	Get(ctx context.Context, id string) (*Owner, error)

	// List retrieves all non-archived owners
	List(ctx context.Context) ([]*Owner, error)

	// Update updates an existing owner
	Update(ctx context.Context, owner *Owner) error

	// GetByUser resolves the owner linked to a user account, if any
	GetByUser(ctx context.Context, userID string) (*Owner, error)

	// ListLinkedUsers returns the user IDs linked to an owner
	ListLinkedUsers(ctx context.Context, ownerID string) ([]string, error)

	// LinkUser records an owner-to-user link; linking twice is a no-op
	LinkUser(ctx context.Context, ownerID, userID string) error
}
