package types

import (
	"strings"

	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/samber/lo"
)

// ARCStatus represents the current state of an architectural review request
type ARCStatus string

const (
	ARCStatusDraft                  ARCStatus = "DRAFT"
	ARCStatusSubmitted              ARCStatus = "SUBMITTED"
	ARCStatusInReview               ARCStatus = "IN_REVIEW"
	ARCStatusRevisionRequested      ARCStatus = "REVISION_REQUESTED"
	ARCStatusReviewComplete         ARCStatus = "REVIEW_COMPLETE"
	ARCStatusApproved               ARCStatus = "APPROVED"
	ARCStatusApprovedWithConditions ARCStatus = "APPROVED_WITH_CONDITIONS"
	ARCStatusDenied                 ARCStatus = "DENIED"
	ARCStatusCompleted              ARCStatus = "COMPLETED"
	ARCStatusArchived               ARCStatus = "ARCHIVED"

	// Reached only through the review sub-engine, never via Transition
	ARCStatusPassed ARCStatus = "PASSED"
	ARCStatusFailed ARCStatus = "FAILED"
)

func (s ARCStatus) String() string {
	return string(s)
}

// NormalizeARCStatus maps a raw client string onto an ARCStatus:
// trimmed, uppercased, spaces collapsed to underscores.
func NormalizeARCStatus(raw string) ARCStatus {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	return ARCStatus(normalized)
}

func (s ARCStatus) Validate() error {
	allowed := []ARCStatus{
		ARCStatusDraft,
		ARCStatusSubmitted,
		ARCStatusInReview,
		ARCStatusRevisionRequested,
		ARCStatusReviewComplete,
		ARCStatusApproved,
		ARCStatusApprovedWithConditions,
		ARCStatusDenied,
		ARCStatusCompleted,
		ARCStatusArchived,
		ARCStatusPassed,
		ARCStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid arc request status").
			WithHint("Please provide a valid request status").
			WithReportableDetails(map[string]any{
				"status":  s,
				"allowed": allowed,
			}).
			Mark(ierr.ErrInvalidState)
	}
	return nil
}

var arcTransitions = map[ARCStatus][]ARCStatus{
	ARCStatusDraft: {
		ARCStatusSubmitted,
	},
	ARCStatusSubmitted: {
		ARCStatusInReview,
	},
	ARCStatusInReview: {
		ARCStatusRevisionRequested,
		ARCStatusReviewComplete,
		ARCStatusApproved,
		ARCStatusApprovedWithConditions,
		ARCStatusDenied,
	},
	ARCStatusRevisionRequested: {
		ARCStatusInReview,
	},
	ARCStatusReviewComplete: {
		ARCStatusApproved,
		ARCStatusApprovedWithConditions,
		ARCStatusDenied,
		ARCStatusArchived,
	},
	ARCStatusApproved: {
		ARCStatusCompleted,
		ARCStatusArchived,
	},
	ARCStatusApprovedWithConditions: {
		ARCStatusCompleted,
		ARCStatusArchived,
	},
	ARCStatusDenied: {
		ARCStatusArchived,
	},
	ARCStatusCompleted: {
		ARCStatusArchived,
	},
	ARCStatusArchived: {},
}

// CanTransitionTo reports whether the edge s -> target is in the table
func (s ARCStatus) CanTransitionTo(target ARCStatus) bool {
	return lo.Contains(arcTransitions[s], target)
}

// IsDecision reports whether the status is a review sub-engine decision
func (s ARCStatus) IsDecision() bool {
	return s == ARCStatusPassed || s == ARCStatusFailed
}

// ReviewDecision is an individual reviewer's verdict on an ARC request
type ReviewDecision string

const (
	ReviewDecisionPass ReviewDecision = "PASS"
	ReviewDecisionFail ReviewDecision = "FAIL"
)

func (d ReviewDecision) Validate() error {
	allowed := []ReviewDecision{ReviewDecisionPass, ReviewDecisionFail}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid review decision").
			WithHint("Review decision must be PASS or FAIL").
			WithReportableDetails(map[string]any{
				"decision": d,
				"allowed":  allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ConditionStatus is the resolution sub-state of an approval condition,
// independent of the parent request's state machine.
type ConditionStatus string

const (
	ConditionStatusOpen     ConditionStatus = "OPEN"
	ConditionStatusResolved ConditionStatus = "RESOLVED"
)
