package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/auditlog"
)

type auditLogRepository struct {
	db *sqlx.DB
}

// NewAuditLogRepository creates a postgres-backed audit log repository.
// Rows are append-only; no update or delete statements exist here.
func NewAuditLogRepository(db *sqlx.DB) auditlog.Repository {
	return &auditLogRepository{db: db}
}

const auditLogColumns = `id, timestamp, actor_id, action, target_type, target_id, before, after`

func (r *auditLogRepository) Create(ctx context.Context, log *auditlog.AuditLog) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO audit_logs (`+auditLogColumns+`)
		VALUES (:id, :timestamp, :actor_id, :action, :target_type, :target_id, :before, :after)`,
		log,
	)
	return err
}

func (r *auditLogRepository) ListByTarget(ctx context.Context, targetType, targetID string) ([]*auditlog.AuditLog, error) {
	var logs []*auditlog.AuditLog
	if err := r.db.SelectContext(ctx, &logs, `
		SELECT `+auditLogColumns+` FROM audit_logs
		WHERE target_type = $1 AND target_id = $2
		ORDER BY timestamp DESC, id DESC`, targetType, targetID); err != nil {
		return nil, err
	}
	return logs, nil
}
