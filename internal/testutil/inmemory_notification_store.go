package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/openhoa/openhoa/internal/domain/notification"
)

// InMemoryNotificationStore is an in-memory implementation of
// notification.Repository.
type InMemoryNotificationStore struct {
	mu            sync.Mutex
	notifications []*notification.Notification
}

// NewInMemoryNotificationStore creates a new instance of InMemoryNotificationStore
func NewInMemoryNotificationStore() *InMemoryNotificationStore {
	return &InMemoryNotificationStore{}
}

func (r *InMemoryNotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *n
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *InMemoryNotificationStore) Get(ctx context.Context, id string) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, errors.New("notification not found")
}

func (r *InMemoryNotificationStore) ListByRecipient(ctx context.Context, recipientID string) ([]*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*notification.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if n.RecipientID == recipientID {
			copied := *n
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *InMemoryNotificationStore) Update(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.notifications {
		if existing.ID == n.ID {
			copied := *n
			r.notifications[i] = &copied
			return nil
		}
	}
	return errors.New("notification not found")
}

func (r *InMemoryNotificationStore) MarkAllRead(ctx context.Context, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.ReadAt == nil {
			n.ReadAt = &now
		}
	}
	return nil
}

// Count returns the total number of notifications stored
func (r *InMemoryNotificationStore) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifications)
}

// Clear removes all notifications from the store
func (r *InMemoryNotificationStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}
