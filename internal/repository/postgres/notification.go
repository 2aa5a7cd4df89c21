package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/notification"
)

type notificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a postgres-backed notification repository
func NewNotificationRepository(db *sqlx.DB) notification.Repository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, recipient_id, title, message, level, category, link, created_at, read_at`

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (:id, :recipient_id, :title, :message, :level, :category, :link, :created_at, :read_at)`,
		n,
	)
	return err
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.GetContext(ctx, &n, `
		SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]*notification.Notification, error) {
	var notifications []*notification.Notification
	if err := r.db.SelectContext(ctx, &notifications, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC`, recipientID); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE notifications
		SET read_at = :read_at
		WHERE id = :id`,
		n,
	)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET read_at = $2
		WHERE recipient_id = $1 AND read_at IS NULL`,
		recipientID, time.Now().UTC(),
	)
	return err
}
