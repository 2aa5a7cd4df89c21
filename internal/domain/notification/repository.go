package notification

import "context"

// Repository defines the interface for notification persistence
type Repository interface {
	// Create persists a notification row
	Create(ctx context.Context, notification *Notification) error

	// Get retrieves a notification by ID
	Get(ctx context.Context, id string) (*Notification, error)

	// ListByRecipient retrieves a recipient's notifications, newest first
	ListByRecipient(ctx context.Context, recipientID string) ([]*Notification, error)

	// Update updates an existing notification
	Update(ctx context.Context, notification *Notification) error

	// MarkAllRead stamps read_at on all of a recipient's unread rows
	MarkAllRead(ctx context.Context, recipientID string) error
}
