package service

import (
	"context"
	"math"
	"time"

	"github.com/openhoa/openhoa/internal/domain/arc"
	"github.com/openhoa/openhoa/internal/domain/user"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/email"
	"github.com/openhoa/openhoa/internal/template"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/openhoa/openhoa/internal/validator"
	"github.com/samber/lo"
)

// TransitionARCRequest asks the engine to move a request to a target
// status. The raw target is normalized (trim, uppercase, spaces to
// underscores) before validation.
type TransitionARCRequest struct {
	RequestID  string  `json:"request_id" validate:"required"`
	Target     string  `json:"target" validate:"required"`
	ReviewerID *string `json:"reviewer_id,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// SubmitReviewRequest records one eligible reviewer's verdict
type SubmitReviewRequest struct {
	RequestID string               `json:"request_id" validate:"required"`
	Decision  types.ReviewDecision `json:"decision" validate:"required"`
	Notes     string               `json:"notes,omitempty"`
}

// ReviewTally is the recomputed review arithmetic for a request
type ReviewTally struct {
	EligibleCount int             `json:"eligible_count"`
	PassCount     int             `json:"pass_count"`
	FailCount     int             `json:"fail_count"`
	Outcome       types.ARCStatus `json:"outcome"`
}

// ARCService is the architectural review workflow engine
type ARCService interface {
	Create(ctx context.Context, request *arc.Request) (*arc.Request, error)
	Get(ctx context.Context, id string) (*arc.Request, error)
	Transition(ctx context.Context, req TransitionARCRequest) (*arc.Request, error)
	SubmitReview(ctx context.Context, req SubmitReviewRequest) (*arc.Request, error)
	NotifyDecision(ctx context.Context, requestID string) error
	ResolveCondition(ctx context.Context, conditionID string) (*arc.Condition, error)
}

type arcService struct {
	ServiceParams
	audit         AuditService
	notifications NotificationService
}

// NewARCService creates a new ARC workflow engine
func NewARCService(params ServiceParams) ARCService {
	return &arcService{
		ServiceParams: params,
		audit:         NewAuditService(params),
		notifications: NewNotificationService(params),
	}
}

func (s *arcService) Create(ctx context.Context, request *arc.Request) (*arc.Request, error) {
	if request.ID == "" {
		request.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ARC_REQUEST)
	}
	request.ARCStatus = types.ARCStatusDraft
	request.SubmitterID = types.GetUserID(ctx)
	request.BaseModel = types.GetDefaultBaseModel(ctx)

	if request.Title == "" {
		return nil, ierr.NewError("title required").
			WithHint("A request title is required").
			Mark(ierr.ErrValidation)
	}

	if err := s.ARCRepo.Create(ctx, request); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create request").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "arc.created", "arc_request", request.ID, nil, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *arcService) Get(ctx context.Context, id string) (*arc.Request, error) {
	request, err := s.ARCRepo.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Request not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return request, nil
}

// Transition normalizes and applies a status change, stamping the
// milestone field matching the target.
func (s *arcService) Transition(ctx context.Context, req TransitionARCRequest) (*arc.Request, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	target := types.NormalizeARCStatus(req.Target)
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if target.IsDecision() {
		return nil, ierr.NewError("decision statuses are reviewer-driven").
			WithHint("PASSED and FAILED are reached through reviews, not transitions").
			Mark(ierr.ErrIllegalTransition)
	}

	request, err := s.Get(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	before := *request
	current := request.ARCStatus
	if !current.CanTransitionTo(target) {
		return nil, ierr.NewError("illegal request transition").
			WithHintf("Cannot move request from %s to %s", current, target).
			WithReportableDetails(map[string]any{
				"from": current,
				"to":   target,
			}).
			Mark(ierr.ErrIllegalTransition)
	}

	now := time.Now().UTC()
	request.ARCStatus = target
	switch target {
	case types.ARCStatusSubmitted:
		request.SubmittedAt = &now
	case types.ARCStatusRevisionRequested:
		request.RevisionRequestedAt = &now
	case types.ARCStatusApproved, types.ARCStatusApprovedWithConditions, types.ARCStatusDenied:
		s.stampDecision(ctx, request, now)
	case types.ARCStatusCompleted:
		request.CompletedAt = &now
	case types.ARCStatusArchived:
		request.ArchivedAt = &now
		request.Status = types.StatusArchived
	}

	if req.ReviewerID != nil {
		request.ReviewerID = req.ReviewerID
	}
	if req.Notes != "" {
		request.DecisionNotes = req.Notes
	}
	request.UpdatedAt = now
	request.UpdatedBy = types.GetUserID(ctx)

	if err := s.ARCRepo.Update(ctx, request); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update request").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "arc.transition", "arc_request", request.ID, &before, request); err != nil {
		return nil, err
	}

	return request, nil
}

// stampDecision sets the decision timestamp and actor together, exactly
// once, on the first terminal decision.
func (s *arcService) stampDecision(ctx context.Context, request *arc.Request, now time.Time) {
	if request.HasDecision() {
		return
	}
	actor := types.GetUserID(ctx)
	request.DecisionAt = &now
	request.DecisionBy = &actor
}

// eligibleReviewers returns the active users holding an ARC reviewer role
func (s *arcService) eligibleReviewers(ctx context.Context) ([]*user.User, error) {
	users, err := s.UserRepo.ListByRoles(ctx, types.ARCReviewerRoles)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to resolve eligible reviewers").
			Mark(ierr.ErrDatabase)
	}
	return lo.Filter(users, func(u *user.User, _ int) bool { return u.IsActive() }), nil
}

// SubmitReview records (or revises) one reviewer's verdict and
// recomputes the majority outcome.
func (s *arcService) SubmitReview(ctx context.Context, req SubmitReviewRequest) (*arc.Request, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := req.Decision.Validate(); err != nil {
		return nil, err
	}

	request, err := s.Get(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	if request.ARCStatus.IsDecision() {
		return nil, ierr.NewError("request already decided").
			WithHintf("Request is already %s", request.ARCStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	if request.ARCStatus != types.ARCStatusSubmitted && request.ARCStatus != types.ARCStatusInReview {
		return nil, ierr.NewError("request not reviewable").
			WithHintf("Reviews require a SUBMITTED or IN_REVIEW request, got %s", request.ARCStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	reviewers, err := s.eligibleReviewers(ctx)
	if err != nil {
		return nil, err
	}
	reviewerID := types.GetUserID(ctx)
	if !lo.ContainsBy(reviewers, func(u *user.User) bool { return u.ID == reviewerID }) {
		return nil, ierr.NewError("reviewer not eligible").
			WithHint("Only active ARC or board members may review requests").
			Mark(ierr.ErrNotEligible)
	}

	// First review pulls a submitted request into review
	if request.ARCStatus == types.ARCStatusSubmitted {
		if request, err = s.Transition(ctx, TransitionARCRequest{
			RequestID: request.ID,
			Target:    string(types.ARCStatusInReview),
		}); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	review := &arc.Review{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ARC_REVIEW),
		RequestID:  request.ID,
		ReviewerID: reviewerID,
		Decision:   req.Decision,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existing, err := s.ARCReviewRepo.GetByRequestAndReviewer(ctx, request.ID, reviewerID); err == nil && existing != nil {
		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
	}
	if err := s.ARCReviewRepo.Upsert(ctx, review); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to record review").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "arc.review.recorded", "arc_request", request.ID, nil, review); err != nil {
		return nil, err
	}

	return s.applyReviewOutcome(ctx, request, len(reviewers))
}

// applyReviewOutcome recomputes pass/fail counts and applies the
// majority decision. The fail threshold is intentionally one vote lower
// than a symmetric majority.
func (s *arcService) applyReviewOutcome(ctx context.Context, request *arc.Request, eligibleCount int) (*arc.Request, error) {
	reviews, err := s.ARCReviewRepo.ListByRequest(ctx, request.ID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load reviews").
			Mark(ierr.ErrDatabase)
	}

	tally := ComputeReviewTally(reviews, eligibleCount)
	if tally.Outcome == types.ARCStatusInReview {
		return request, nil
	}

	// Idempotent: an identical recompute does not re-stamp
	if request.ARCStatus == tally.Outcome {
		return request, nil
	}

	before := *request
	now := time.Now().UTC()
	request.ARCStatus = tally.Outcome
	s.stampDecision(ctx, request, now)
	request.UpdatedAt = now
	request.UpdatedBy = types.GetUserID(ctx)

	if err := s.ARCRepo.Update(ctx, request); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update request").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "arc.review.decided", "arc_request", request.ID, &before, request); err != nil {
		return nil, err
	}

	if err := s.NotifyDecision(ctx, request.ID); err != nil {
		s.Logger.Errorw("decision notification failed",
			"error", err,
			"request_id", request.ID,
		)
	}

	return s.Get(ctx, request.ID)
}

// ComputeReviewTally applies the review thresholds: PASSED at
// ceil(n/2) passes, FAILED at floor(n/2)+1 fails, otherwise IN_REVIEW.
// The asymmetry is a deliberate tie-break favoring denial.
func ComputeReviewTally(reviews []*arc.Review, eligibleCount int) ReviewTally {
	tally := ReviewTally{
		EligibleCount: eligibleCount,
		Outcome:       types.ARCStatusInReview,
	}
	for _, review := range reviews {
		switch review.Decision {
		case types.ReviewDecisionPass:
			tally.PassCount++
		case types.ReviewDecisionFail:
			tally.FailCount++
		}
	}

	if eligibleCount == 0 {
		return tally
	}

	passThreshold := int(math.Ceil(float64(eligibleCount) / 2))
	failThreshold := eligibleCount/2 + 1

	if tally.PassCount >= passThreshold {
		tally.Outcome = types.ARCStatusPassed
	} else if tally.FailCount >= failThreshold {
		tally.Outcome = types.ARCStatusFailed
	}
	return tally
}

var decisionTemplates = map[types.ARCStatus]noticeTemplate{
	types.ARCStatusPassed: {
		Key:     "ARC_REQUEST_PASSED",
		Subject: "Your architectural request was approved: {{title}}",
		Body:    "Dear {{requester_name}},\n\nYour request \"{{title}}\" ({{project_type}}) has passed review.",
	},
	types.ARCStatusFailed: {
		Key:     "ARC_REQUEST_FAILED",
		Subject: "Your architectural request was denied: {{title}}",
		Body:    "Dear {{requester_name}},\n\nYour request \"{{title}}\" ({{project_type}}) did not pass review.",
	},
}

// NotifyDecision emails the requester once per decision. Guarded by the
// (status, notified_status) pair: resending the same decision is a
// no-op, while a status flip clears the guard.
func (s *arcService) NotifyDecision(ctx context.Context, requestID string) error {
	request, err := s.Get(ctx, requestID)
	if err != nil {
		return err
	}

	if !request.ARCStatus.IsDecision() {
		return nil
	}
	if request.DecisionNotified && request.NotifiedStatus == request.ARCStatus {
		return nil
	}

	tmpl := decisionTemplates[request.ARCStatus]

	ownerRecord, err := s.OwnerRepo.Get(ctx, request.OwnerID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Request owner not found").
			Mark(ierr.ErrNotFound)
	}

	requesterName := ownerRecord.Name
	recipient := ownerRecord.Email
	if submitter, err := s.UserRepo.Get(ctx, request.SubmitterID); err == nil && submitter != nil && submitter.Email != "" {
		requesterName = submitter.Name
		recipient = submitter.Email
	}

	mergeCtx := map[string]string{
		"requester_name": requesterName,
		"owner_name":     ownerRecord.Name,
		"title":          request.Title,
		"project_type":   request.ProjectType,
		"status":         request.ARCStatus.String(),
	}
	subject := template.Render(tmpl.Subject, mergeCtx)
	body := template.Render(tmpl.Body, mergeCtx)

	if recipient == "" {
		s.Logger.Warnw("no email on file for arc decision notice",
			"request_id", request.ID,
			"owner_id", ownerRecord.ID,
		)
		return nil
	}

	if err := s.EmailSender.Send(ctx, email.Message{
		To:      recipient,
		Subject: subject,
		Body:    body,
	}); err != nil {
		// Guard stays clear so a later attempt can resend
		s.Logger.Errorw("arc decision email failed",
			"error", err,
			"request_id", request.ID,
		)
		return nil
	}

	request.DecisionNotified = true
	request.NotifiedStatus = request.ARCStatus
	if err := s.ARCRepo.Update(ctx, request); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record decision notification").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

// ResolveCondition closes an open approval condition
func (s *arcService) ResolveCondition(ctx context.Context, conditionID string) (*arc.Condition, error) {
	condition, err := s.ARCConditionRepo.Get(ctx, conditionID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Condition not found").
			Mark(ierr.ErrNotFound)
	}

	if condition.ConditionStatus == types.ConditionStatusResolved {
		return condition, nil
	}

	before := *condition
	now := time.Now().UTC()
	actor := types.GetUserID(ctx)
	condition.ConditionStatus = types.ConditionStatusResolved
	condition.ResolvedAt = &now
	condition.ResolvedBy = &actor

	if err := s.ARCConditionRepo.Update(ctx, condition); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to resolve condition").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "arc.condition.resolved", "arc_condition", condition.ID, &before, condition); err != nil {
		return nil, err
	}

	return condition, nil
}
