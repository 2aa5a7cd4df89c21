package notification

import (
	"time"

	"github.com/openhoa/openhoa/internal/types"
)

// Notification is one recipient's copy of a dispatched message.
// ReadAt is set at most once per notification, or in bulk.
type Notification struct {
	ID          string                     `db:"id" json:"id"`
	RecipientID string                     `db:"recipient_id" json:"recipient_id"`
	Title       string                     `db:"title" json:"title"`
	Message     string                     `db:"message" json:"message"`
	Level       types.NotificationLevel    `db:"level" json:"level"`
	Category    types.NotificationCategory `db:"category" json:"category,omitempty"`
	Link        string                     `db:"link" json:"link,omitempty"`
	CreatedAt   time.Time                  `db:"created_at" json:"created_at"`
	ReadAt      *time.Time                 `db:"read_at" json:"read_at,omitempty"`
}

// IsRead reports whether the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
