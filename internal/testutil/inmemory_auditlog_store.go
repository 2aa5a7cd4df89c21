package testutil

import (
	"context"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/auditlog"
)

// InMemoryAuditLogStore is an in-memory implementation of
// auditlog.Repository. Rows are append-only; an optional failure hook
// lets tests exercise the audit-failure path.
type InMemoryAuditLogStore struct {
	mu   sync.Mutex
	logs []*auditlog.AuditLog

	// FailNext makes the next Create return an error, then resets
	FailNext error
}

// NewInMemoryAuditLogStore creates a new instance of InMemoryAuditLogStore
func NewInMemoryAuditLogStore() *InMemoryAuditLogStore {
	return &InMemoryAuditLogStore{}
}

func (r *InMemoryAuditLogStore) Create(ctx context.Context, log *auditlog.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNext != nil {
		err := r.FailNext
		r.FailNext = nil
		return err
	}

	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *InMemoryAuditLogStore) ListByTarget(ctx context.Context, targetType, targetID string) ([]*auditlog.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*auditlog.AuditLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		log := r.logs[i]
		if log.TargetType == targetType && log.TargetID == targetID {
			copied := *log
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Count returns the total number of rows recorded
func (r *InMemoryAuditLogStore) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

// Clear removes all rows from the store
func (r *InMemoryAuditLogStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = nil
	r.FailNext = nil
}
