package arc

import (
	"time"

	"github.com/openhoa/openhoa/internal/types"
)

// Request represents an architectural review request
type Request struct {
	ID          string          `db:"id" json:"id"`
	OwnerID     string          `db:"owner_id" json:"owner_id"`
	SubmitterID string          `db:"submitter_id" json:"submitter_id"`
	ReviewerID  *string         `db:"reviewer_id" json:"reviewer_id,omitempty"`
	Title       string          `db:"title" json:"title"`
	ProjectType string          `db:"project_type" json:"project_type"`
	Description string          `db:"description" json:"description"`
	ARCStatus   types.ARCStatus `db:"arc_status" json:"arc_status"`

	SubmittedAt         *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
	RevisionRequestedAt *time.Time `db:"revision_requested_at" json:"revision_requested_at,omitempty"`
	// DecisionAt and DecisionBy are stamped together, exactly once, when the
	// request first reaches a terminal decision state.
	DecisionAt    *time.Time `db:"decision_at" json:"decision_at,omitempty"`
	DecisionBy    *string    `db:"decision_by" json:"decision_by,omitempty"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	ArchivedAt    *time.Time `db:"archived_at" json:"archived_at,omitempty"`
	DecisionNotes string     `db:"decision_notes" json:"decision_notes,omitempty"`

	// DecisionNotified guards the one-shot decision email together with
	// NotifiedStatus: resending for the same (status, notified) pair is a
	// no-op, and a status flip clears the guard.
	DecisionNotified bool            `db:"decision_notified" json:"decision_notified"`
	NotifiedStatus   types.ARCStatus `db:"notified_status" json:"notified_status,omitempty"`

	types.BaseModel
}

// HasDecision reports whether the decision timestamp has been stamped
func (r *Request) HasDecision() bool {
	return r.DecisionAt != nil
}

// Review is one reviewer's verdict on a request; unique per
// (request, reviewer) with upsert semantics so a reviewer may change
// their vote.
type Review struct {
	ID         string               `db:"id" json:"id"`
	RequestID  string               `db:"request_id" json:"request_id"`
	ReviewerID string               `db:"reviewer_id" json:"reviewer_id"`
	Decision   types.ReviewDecision `db:"decision" json:"decision"`
	Notes      string               `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `db:"updated_at" json:"updated_at"`
}

// Condition is an approval condition with a resolution sub-state
// independent of the parent request's state machine.
type Condition struct {
	ID              string                `db:"id" json:"id"`
	RequestID       string                `db:"request_id" json:"request_id"`
	Description     string                `db:"description" json:"description"`
	ConditionStatus types.ConditionStatus `db:"condition_status" json:"condition_status"`
	ResolvedAt      *time.Time            `db:"resolved_at" json:"resolved_at,omitempty"`
	ResolvedBy      *string               `db:"resolved_by" json:"resolved_by,omitempty"`
	CreatedAt       time.Time             `db:"created_at" json:"created_at"`
}

// Attachment is a submitted plan or photo on a request
type Attachment struct {
	ID        string    `db:"id" json:"id"`
	RequestID string    `db:"request_id" json:"request_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FilePath  string    `db:"file_path" json:"file_path"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Inspection records a site visit against a request
type Inspection struct {
	ID          string    `db:"id" json:"id"`
	RequestID   string    `db:"request_id" json:"request_id"`
	InspectorID string    `db:"inspector_id" json:"inspector_id"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	InspectedAt time.Time `db:"inspected_at" json:"inspected_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
