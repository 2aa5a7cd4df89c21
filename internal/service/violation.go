package service

import (
	"context"
	"time"

	"github.com/openhoa/openhoa/internal/domain/owner"
	"github.com/openhoa/openhoa/internal/domain/violation"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/email"
	"github.com/openhoa/openhoa/internal/template"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/openhoa/openhoa/internal/validator"
	"github.com/shopspring/decimal"
)

// TransitionViolationRequest asks the engine to move a violation to a
// target status. HearingDate and FineAmount apply only to the states
// that consume them.
type TransitionViolationRequest struct {
	ViolationID  string                `json:"violation_id" validate:"required"`
	TargetStatus types.ViolationStatus `json:"target_status" validate:"required"`
	Note         string                `json:"note,omitempty"`
	HearingDate  *time.Time            `json:"hearing_date,omitempty"`
	FineAmount   *decimal.Decimal      `json:"fine_amount,omitempty"`
}

// ViolationService is the violation workflow engine
type ViolationService interface {
	Create(ctx context.Context, v *violation.Violation) (*violation.Violation, error)
	Get(ctx context.Context, id string) (*violation.Violation, error)
	Transition(ctx context.Context, req TransitionViolationRequest) (*violation.Violation, error)
	SubmitAppeal(ctx context.Context, violationID, reason string) (*violation.Appeal, error)
	DecideAppeal(ctx context.Context, appealID string, approve bool, notes string) (*violation.Appeal, error)
}

type violationService struct {
	ServiceParams
	audit         AuditService
	notifications NotificationService
	ledger        LedgerService
}

// NewViolationService creates a new violation workflow engine
func NewViolationService(params ServiceParams) ViolationService {
	return &violationService{
		ServiceParams: params,
		audit:         NewAuditService(params),
		notifications: NewNotificationService(params),
		ledger:        NewLedgerService(params),
	}
}

func (s *violationService) Create(ctx context.Context, v *violation.Violation) (*violation.Violation, error) {
	if !types.GetRoleSet(ctx).HasAny(types.RoleManager, types.RoleSysadmin) {
		return nil, ierr.NewError("actor may not open violations").
			WithHint("Only managers may open violations").
			Mark(ierr.ErrPermissionDenied)
	}

	if v.ID == "" {
		v.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VIOLATION)
	}
	v.ViolationStatus = types.ViolationStatusNew
	v.BaseModel = types.GetDefaultBaseModel(ctx)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	if err := s.ViolationRepo.Create(ctx, v); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create violation").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "violation.created", "violation", v.ID, nil, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *violationService) Get(ctx context.Context, id string) (*violation.Violation, error) {
	v, err := s.ViolationRepo.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Violation not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return v, nil
}

// Transition validates and applies a status change, driving the fine
// invoice, notice, audit, and notification side effects. Repeating a
// transition with the same target and unchanged optional fields is a
// no-op with no side effects.
func (s *violationService) Transition(ctx context.Context, req TransitionViolationRequest) (*violation.Violation, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := req.TargetStatus.Validate(); err != nil {
		return nil, err
	}

	v, err := s.Get(ctx, req.ViolationID)
	if err != nil {
		return nil, err
	}

	before := *v
	current := v.ViolationStatus

	if req.TargetStatus == current {
		if !s.fieldsChanged(v, req) {
			// Idempotent retry: no duplicate notices or audit entries
			return v, nil
		}
		// Same-status call with changed fields updates the fields; the
		// fine-invoice marker guard keeps the invoice unique
	} else if !current.CanTransitionTo(req.TargetStatus) {
		return nil, ierr.NewError("illegal violation transition").
			WithHintf("Cannot move violation from %s to %s", current, req.TargetStatus).
			WithReportableDetails(map[string]any{
				"from": current,
				"to":   req.TargetStatus,
			}).
			Mark(ierr.ErrIllegalTransition)
	}

	if req.HearingDate != nil {
		v.HearingDate = req.HearingDate
	}
	if req.Note != "" {
		v.ResolutionNotes = req.Note
	}

	if req.TargetStatus == types.ViolationStatusFineActive {
		if req.FineAmount == nil && v.FineAmount == nil {
			return nil, ierr.NewError("fine amount required").
				WithHint("A fine amount is required to activate a fine").
				Mark(ierr.ErrValidation)
		}
		if req.FineAmount != nil {
			v.FineAmount = req.FineAmount
		}
	}

	v.ViolationStatus = req.TargetStatus
	v.UpdatedAt = time.Now().UTC()
	v.UpdatedBy = types.GetUserID(ctx)
	if req.TargetStatus == types.ViolationStatusArchived {
		v.Status = types.StatusArchived
	}

	if err := s.ViolationRepo.Update(ctx, v); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update violation").
			Mark(ierr.ErrDatabase)
	}

	if req.TargetStatus == types.ViolationStatusFineActive {
		if _, _, err := s.ledger.CreateFineInvoice(ctx, v.ID, v.OwnerID, *v.FineAmount); err != nil {
			return nil, err
		}
	}

	ownerRecord, err := s.OwnerRepo.Get(ctx, v.OwnerID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Violation owner not found").
			Mark(ierr.ErrNotFound)
	}

	if noticeTemplate, ok := noticeTemplates[req.TargetStatus]; ok {
		if err := s.sendNotice(ctx, v, ownerRecord, noticeTemplate); err != nil {
			return nil, err
		}
	}

	if err := s.audit.Record(ctx, "violation.transition", "violation", v.ID, &before, v); err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, v, ownerRecord)

	return v, nil
}

// fieldsChanged reports whether the request would change the hearing
// date or fine amount already on the violation.
func (s *violationService) fieldsChanged(v *violation.Violation, req TransitionViolationRequest) bool {
	if req.HearingDate != nil {
		if v.HearingDate == nil || !v.HearingDate.Equal(*req.HearingDate) {
			return true
		}
	}
	if req.FineAmount != nil {
		if v.FineAmount == nil || !v.FineAmount.Equal(*req.FineAmount) {
			return true
		}
	}
	return false
}

// noticeTemplate is a merge-tag notice definition keyed by target state
type noticeTemplate struct {
	Key     string
	Subject string
	Body    string
}

var noticeTemplates = map[types.ViolationStatus]noticeTemplate{
	types.ViolationStatusWarningSent: {
		Key:     "VIOLATION_WARNING",
		Subject: "Violation warning: {{category}}",
		Body:    "Dear {{owner_name}},\n\nA warning has been issued for the violation at {{location}}: {{description}}. Please correct it by {{due_date}}.",
	},
	types.ViolationStatusHearing: {
		Key:     "VIOLATION_HEARING",
		Subject: "Hearing scheduled: {{category}}",
		Body:    "Dear {{owner_name}},\n\nA hearing for the violation at {{location}} has been scheduled for {{hearing_date}}.",
	},
	types.ViolationStatusFineActive: {
		Key:     "VIOLATION_FINE",
		Subject: "Fine assessed: {{category}}",
		Body:    "Dear {{owner_name}},\n\nA fine of {{fine_amount}} has been assessed for the violation at {{location}}: {{description}}.",
	},
}

// sendNotice renders, persists, and emails a templated notice. Document
// generation and email delivery degrade gracefully; persistence of the
// notice row does not.
func (s *violationService) sendNotice(ctx context.Context, v *violation.Violation, ownerRecord *owner.Owner, tmpl noticeTemplate) error {
	mergeCtx := map[string]string{
		"owner_name":  ownerRecord.Name,
		"category":    v.Category,
		"description": v.Description,
		"location":    v.Location,
	}
	if v.DueDate != nil {
		mergeCtx["due_date"] = v.DueDate.Format("January 2, 2006")
	}
	if v.HearingDate != nil {
		mergeCtx["hearing_date"] = v.HearingDate.Format("January 2, 2006")
	}
	if v.FineAmount != nil {
		mergeCtx["fine_amount"] = "$" + v.FineAmount.StringFixed(2)
	}

	subject := template.Render(tmpl.Subject, mergeCtx)
	body := template.Render(tmpl.Body, mergeCtx)

	noticeType := types.NoticeTypePostal
	if ownerRecord.Email != "" {
		noticeType = types.NoticeTypeEmail
	}

	notice := &violation.Notice{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VIOLATION_NOTICE),
		ViolationID: v.ID,
		SenderID:    types.GetUserID(ctx),
		NoticeType:  noticeType,
		TemplateKey: tmpl.Key,
		Subject:     subject,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}

	if path, err := s.DocGenerator.GenerateNotice(ctx, tmpl.Key, subject, body); err != nil {
		s.Logger.Errorw("notice document generation failed",
			"error", err,
			"violation_id", v.ID,
		)
	} else {
		notice.DocumentPath = &path
	}

	if err := s.NoticeRepo.Create(ctx, notice); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to persist violation notice").
			Mark(ierr.ErrDatabase)
	}

	if ownerRecord.Email != "" {
		if err := s.EmailSender.Send(ctx, email.Message{
			To:      ownerRecord.Email,
			Subject: subject,
			Body:    body,
		}); err != nil {
			s.Logger.Errorw("notice email failed",
				"error", err,
				"violation_id", v.ID,
				"owner_id", ownerRecord.ID,
			)
		}
	}

	return nil
}

// notifyTransition emits role-scoped notifications to governance staff
// plus any accounts linked to the owner. Copy varies by target state.
func (s *violationService) notifyTransition(ctx context.Context, v *violation.Violation, ownerRecord *owner.Owner) {
	linkedUsers, err := s.OwnerRepo.ListLinkedUsers(ctx, v.OwnerID)
	if err != nil {
		s.Logger.Errorw("failed to resolve owner accounts for notification",
			"error", err,
			"owner_id", v.OwnerID,
		)
	}

	title := "Violation " + v.ID
	level := types.NotificationLevelInfo
	var message string
	switch v.ViolationStatus {
	case types.ViolationStatusWarningSent:
		message = "A warning was sent for the violation at " + ownerRecord.Unit + "."
		level = types.NotificationLevelWarning
	case types.ViolationStatusHearing:
		message = "A hearing was scheduled for the violation at " + ownerRecord.Unit + "."
		level = types.NotificationLevelWarning
	case types.ViolationStatusFineActive:
		message = "A fine was assessed for the violation at " + ownerRecord.Unit + "."
		level = types.NotificationLevelCritical
	case types.ViolationStatusResolved:
		message = "The violation at " + ownerRecord.Unit + " was resolved."
	default:
		message = "Violation status updated to " + v.ViolationStatus.String() + "."
	}

	if _, err := s.notifications.Create(ctx, CreateNotificationRequest{
		Title:    title,
		Message:  message,
		Level:    level,
		Category: types.NotificationCategoryViolation,
		Link:     "/violations/" + v.ID,
		UserIDs:  linkedUsers,
		Roles:    types.GovernanceRoles,
	}); err != nil {
		s.Logger.Errorw("violation notification failed",
			"error", err,
			"violation_id", v.ID,
		)
	}
}

// SubmitAppeal files an owner's appeal of their own violation
func (s *violationService) SubmitAppeal(ctx context.Context, violationID, reason string) (*violation.Appeal, error) {
	v, err := s.Get(ctx, violationID)
	if err != nil {
		return nil, err
	}

	ownerRecord, err := s.OwnerRepo.GetByUser(ctx, types.GetUserID(ctx))
	if err != nil || ownerRecord == nil || ownerRecord.ID != v.OwnerID {
		return nil, ierr.NewError("appeal not permitted").
			WithHint("Owners may appeal only their own violations").
			Mark(ierr.ErrPermissionDenied)
	}

	if reason == "" {
		return nil, ierr.NewError("appeal reason required").
			WithHint("A reason is required to submit an appeal").
			Mark(ierr.ErrValidation)
	}

	appeal := &violation.Appeal{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_APPEAL),
		ViolationID:  violationID,
		OwnerID:      ownerRecord.ID,
		AppealStatus: types.AppealStatusPending,
		Reason:       reason,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := s.AppealRepo.Create(ctx, appeal); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to submit appeal").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "violation.appeal.submitted", "appeal", appeal.ID, nil, appeal); err != nil {
		return nil, err
	}

	return appeal, nil
}

// DecideAppeal records the single decision on a pending appeal.
// Approving an appeal resolves the violation.
func (s *violationService) DecideAppeal(ctx context.Context, appealID string, approve bool, notes string) (*violation.Appeal, error) {
	if !types.GetRoleSet(ctx).HasAny(types.RoleBoard, types.RoleManager, types.RoleSysadmin) {
		return nil, ierr.NewError("actor may not decide appeals").
			WithHint("Only board members or managers may decide appeals").
			Mark(ierr.ErrPermissionDenied)
	}

	appeal, err := s.AppealRepo.Get(ctx, appealID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Appeal not found").
			Mark(ierr.ErrNotFound)
	}
	if appeal.AppealStatus != types.AppealStatusPending {
		return nil, ierr.NewError("appeal already decided").
			WithHintf("Appeal is already %s", appeal.AppealStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	// Approval resolves the violation, so the resolution edge must exist
	// before the appeal is touched; otherwise the decision would persist
	// with the violation left behind.
	if approve {
		v, err := s.Get(ctx, appeal.ViolationID)
		if err != nil {
			return nil, err
		}
		if v.ViolationStatus != types.ViolationStatusResolved &&
			!v.ViolationStatus.CanTransitionTo(types.ViolationStatusResolved) {
			return nil, ierr.NewError("violation cannot be resolved by appeal").
				WithHintf("A violation in %s cannot be resolved; advance it before approving the appeal", v.ViolationStatus).
				WithReportableDetails(map[string]any{
					"violation_id":     appeal.ViolationID,
					"violation_status": v.ViolationStatus,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
	}

	before := *appeal
	now := time.Now().UTC()
	reviewer := types.GetUserID(ctx)
	if approve {
		appeal.AppealStatus = types.AppealStatusApproved
	} else {
		appeal.AppealStatus = types.AppealStatusRejected
	}
	appeal.DecisionNotes = notes
	appeal.DecidedAt = &now
	appeal.ReviewerID = &reviewer

	if err := s.AppealRepo.Update(ctx, appeal); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decide appeal").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "violation.appeal.decided", "appeal", appeal.ID, &before, appeal); err != nil {
		return nil, err
	}

	if approve {
		if _, err := s.Transition(ctx, TransitionViolationRequest{
			ViolationID:  appeal.ViolationID,
			TargetStatus: types.ViolationStatusResolved,
			Note:         "Resolved by approved appeal " + appeal.ID,
		}); err != nil {
			return nil, err
		}
	}

	return appeal, nil
}
