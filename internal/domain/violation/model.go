package violation

import (
	"time"

	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
)

// Violation represents a covenant violation opened against an owner.
// Status moves only through the transition engine; rows are archived,
// never hard-deleted.
type Violation struct {
	ID              string                `db:"id" json:"id"`
	OwnerID         string                `db:"owner_id" json:"owner_id"`
	ReporterID      string                `db:"reporter_id" json:"reporter_id"`
	FineScheduleID  *string               `db:"fine_schedule_id" json:"fine_schedule_id,omitempty"`
	ViolationStatus types.ViolationStatus `db:"violation_status" json:"violation_status"`
	Category        string                `db:"category" json:"category"`
	Description     string                `db:"description" json:"description"`
	Location        string                `db:"location" json:"location,omitempty"`
	DueDate         *time.Time            `db:"due_date" json:"due_date,omitempty"`
	HearingDate     *time.Time            `db:"hearing_date" json:"hearing_date,omitempty"`
	// FineAmount is set only once the violation reaches FINE_ACTIVE
	FineAmount      *decimal.Decimal `db:"fine_amount" json:"fine_amount,omitempty"`
	ResolutionNotes string           `db:"resolution_notes" json:"resolution_notes,omitempty"`
	types.BaseModel
}

func (v *Violation) Validate() error {
	if err := v.ViolationStatus.Validate(); err != nil {
		return err
	}
	if v.FineAmount != nil && v.FineAmount.IsNegative() {
		return types.NewFieldValidationError("fine_amount", "must be non negative")
	}
	return nil
}

// Notice is an immutable record of a templated notice sent for a violation
type Notice struct {
	ID           string           `db:"id" json:"id"`
	ViolationID  string           `db:"violation_id" json:"violation_id"`
	SenderID     string           `db:"sender_id" json:"sender_id"`
	NoticeType   types.NoticeType `db:"notice_type" json:"notice_type"`
	TemplateKey  string           `db:"template_key" json:"template_key"`
	Subject      string           `db:"subject" json:"subject"`
	Body         string           `db:"body" json:"body"`
	DocumentPath *string          `db:"document_path" json:"document_path,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// Appeal is an owner's appeal of a violation. One decision per appeal;
// the reviewer and decision timestamp are stamped together.
type Appeal struct {
	ID            string             `db:"id" json:"id"`
	ViolationID   string             `db:"violation_id" json:"violation_id"`
	OwnerID       string             `db:"owner_id" json:"owner_id"`
	AppealStatus  types.AppealStatus `db:"appeal_status" json:"appeal_status"`
	Reason        string             `db:"reason" json:"reason"`
	DecisionNotes string             `db:"decision_notes" json:"decision_notes,omitempty"`
	SubmittedAt   time.Time          `db:"submitted_at" json:"submitted_at"`
	DecidedAt     *time.Time         `db:"decided_at" json:"decided_at,omitempty"`
	ReviewerID    *string            `db:"reviewer_id" json:"reviewer_id,omitempty"`
}
