package dto

import (
	"time"

	"github.com/openhoa/openhoa/internal/domain/violation"
	"github.com/shopspring/decimal"
)

// CreateViolationRequest opens a new violation against an owner
type CreateViolationRequest struct {
	OwnerID        string     `json:"owner_id" binding:"required"`
	FineScheduleID *string    `json:"fine_schedule_id,omitempty"`
	Category       string     `json:"category" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Location       string     `json:"location,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
}

func (r *CreateViolationRequest) ToViolation(reporterID string) *violation.Violation {
	return &violation.Violation{
		OwnerID:        r.OwnerID,
		ReporterID:     reporterID,
		FineScheduleID: r.FineScheduleID,
		Category:       r.Category,
		Description:    r.Description,
		Location:       r.Location,
		DueDate:        r.DueDate,
	}
}

// TransitionViolationRequest moves a violation to a target status
type TransitionViolationRequest struct {
	TargetStatus string           `json:"target_status" binding:"required"`
	Note         string           `json:"note,omitempty"`
	HearingDate  *time.Time       `json:"hearing_date,omitempty"`
	FineAmount   *decimal.Decimal `json:"fine_amount,omitempty"`
}

// SubmitAppealRequest is an owner's appeal of their violation
type SubmitAppealRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DecideAppealRequest records the one-shot appeal decision
type DecideAppealRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty"`
}
