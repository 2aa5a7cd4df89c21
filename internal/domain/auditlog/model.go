package auditlog

import (
	"time"
)

// AuditLog is one immutable before/after record of a state-changing
// operation. Rows are append-only; they are never updated or deleted.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
	ActorID    *string   `db:"actor_id" json:"actor_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	TargetType string    `db:"target_type" json:"target_type"`
	TargetID   string    `db:"target_id" json:"target_id"`
	// Before and After are JSON-serialized snapshots; value round-trip
	// matters, key order does not
	Before string `db:"before" json:"before,omitempty"`
	After  string `db:"after" json:"after,omitempty"`
}
