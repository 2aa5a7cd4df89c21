package user

import (
	"context"

	"github.com/openhoa/openhoa/internal/types"
)

// Repository defines the interface for user persistence operations.
// The directory is read-only from the engines' perspective apart from
// account creation.
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ListByRoles retrieves active users holding any of the given roles
	ListByRoles(ctx context.Context, roles []types.Role) ([]*User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *User) error
}
