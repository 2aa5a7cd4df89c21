package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/openhoa/openhoa/internal/domain/auditlog"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/types"
)

// AuditService appends an immutable before/after record for every
// state-changing operation. A failed append is fatal to the mutation it
// describes: an operation the sink cannot record has not met its
// durability contract.
type AuditService interface {
	Record(ctx context.Context, action, targetType, targetID string, before, after any) error
	ListByTarget(ctx context.Context, targetType, targetID string) ([]*auditlog.AuditLog, error)
}

type auditService struct {
	ServiceParams
}

// NewAuditService creates a new audit service
func NewAuditService(params ServiceParams) AuditService {
	return &auditService{ServiceParams: params}
}

func (s *auditService) Record(ctx context.Context, action, targetType, targetID string, before, after any) error {
	beforeJSON, err := snapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := snapshot(after)
	if err != nil {
		return err
	}

	entry := &auditlog.AuditLog{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT_LOG),
		Timestamp:  time.Now().UTC(),
		ActorID:    actorID(ctx),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Before:     beforeJSON,
		After:      afterJSON,
	}

	if err := s.AuditLogRepo.Create(ctx, entry); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record audit log").
			WithReportableDetails(map[string]any{
				"action":      action,
				"target_type": targetType,
				"target_id":   targetID,
			}).
			Mark(ierr.ErrSystem)
	}

	s.Logger.Debugw("recorded audit log",
		"action", action,
		"target_type", targetType,
		"target_id", targetID,
	)

	return nil
}

func (s *auditService) ListByTarget(ctx context.Context, targetType, targetID string) ([]*auditlog.AuditLog, error) {
	return s.AuditLogRepo.ListByTarget(ctx, targetType, targetID)
}

// snapshot serializes a before/after value. Value round-trip matters;
// key order does not.
func snapshot(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to serialize audit snapshot").
			Mark(ierr.ErrSystem)
	}
	return string(data), nil
}

// actorID returns the caller's user ID, or nil for unauthenticated
// batch operations.
func actorID(ctx context.Context) *string {
	if userID := types.GetUserID(ctx); userID != "" {
		return &userID
	}
	return nil
}
