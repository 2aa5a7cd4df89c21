package types

import (
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/samber/lo"
)

// ViolationStatus represents the current state of a violation in its lifecycle
type ViolationStatus string

const (
	ViolationStatusNew         ViolationStatus = "NEW"
	ViolationStatusUnderReview ViolationStatus = "UNDER_REVIEW"
	ViolationStatusWarningSent ViolationStatus = "WARNING_SENT"
	ViolationStatusHearing     ViolationStatus = "HEARING"
	ViolationStatusFineActive  ViolationStatus = "FINE_ACTIVE"
	ViolationStatusResolved    ViolationStatus = "RESOLVED"
	ViolationStatusArchived    ViolationStatus = "ARCHIVED"
)

func (s ViolationStatus) String() string {
	return string(s)
}

func (s ViolationStatus) Validate() error {
	allowed := []ViolationStatus{
		ViolationStatusNew,
		ViolationStatusUnderReview,
		ViolationStatusWarningSent,
		ViolationStatusHearing,
		ViolationStatusFineActive,
		ViolationStatusResolved,
		ViolationStatusArchived,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid violation status").
			WithHint("Please provide a valid violation status").
			WithReportableDetails(map[string]any{
				"status":  s,
				"allowed": allowed,
			}).
			Mark(ierr.ErrInvalidState)
	}
	return nil
}

// violationTransitions is the directed edge set of the violation state
// machine. There are no implicit self-loops; ARCHIVED is terminal.
var violationTransitions = map[ViolationStatus][]ViolationStatus{
	ViolationStatusNew: {
		ViolationStatusUnderReview,
		ViolationStatusArchived,
	},
	ViolationStatusUnderReview: {
		ViolationStatusWarningSent,
		ViolationStatusFineActive,
		ViolationStatusArchived,
	},
	ViolationStatusWarningSent: {
		ViolationStatusHearing,
		ViolationStatusFineActive,
		ViolationStatusResolved,
	},
	ViolationStatusHearing: {
		ViolationStatusFineActive,
		ViolationStatusResolved,
	},
	ViolationStatusFineActive: {
		ViolationStatusResolved,
	},
	ViolationStatusResolved: {
		ViolationStatusArchived,
	},
	ViolationStatusArchived: {},
}

// CanTransitionTo reports whether the edge s -> target is in the table
func (s ViolationStatus) CanTransitionTo(target ViolationStatus) bool {
	return lo.Contains(violationTransitions[s], target)
}

// NoticeType is the delivery channel of a violation notice
type NoticeType string

const (
	NoticeTypeEmail  NoticeType = "EMAIL"
	NoticeTypePostal NoticeType = "POSTAL"
)

func (t NoticeType) Validate() error {
	allowed := []NoticeType{NoticeTypeEmail, NoticeTypePostal}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid notice type").
			WithHint("Please provide a valid notice type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AppealStatus represents the state of an owner's appeal of a violation
type AppealStatus string

const (
	AppealStatusPending  AppealStatus = "PENDING"
	AppealStatusApproved AppealStatus = "APPROVED"
	AppealStatusRejected AppealStatus = "REJECTED"
)

func (s AppealStatus) Validate() error {
	allowed := []AppealStatus{
		AppealStatusPending,
		AppealStatusApproved,
		AppealStatusRejected,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid appeal status").
			WithHint("Please provide a valid appeal status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
