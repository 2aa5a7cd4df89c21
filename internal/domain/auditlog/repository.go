package auditlog

import "context"

// Repository defines the interface for audit log persistence. The sink is
// append-only by contract.
type Repository interface {
	// Create appends a new audit log row
	Create(ctx context.Context, log *AuditLog) error

	// ListByTarget retrieves rows for a target entity, newest first
	ListByTarget(ctx context.Context, targetType, targetID string) ([]*AuditLog, error)
}
