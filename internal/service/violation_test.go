package service

import (
	"errors"
	"testing"

	"github.com/openhoa/openhoa/internal/domain/owner"
	"github.com/openhoa/openhoa/internal/domain/user"
	"github.com/openhoa/openhoa/internal/domain/violation"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/testutil"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ViolationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ViolationService
}

func TestViolationService(t *testing.T) {
	suite.Run(t, new(ViolationServiceSuite))
}

func (s *ViolationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewViolationService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ViolationServiceSuite) seedOwner(id, email string) *owner.Owner {
	o := &owner.Owner{
		ID:    id,
		Name:  "Pat Garcia",
		Email: email,
		Unit:  "12B",
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}
	s.NoError(s.GetStores().OwnerRepo.Create(s.GetContext(), o))
	return o
}

func (s *ViolationServiceSuite) seedViolation(id, ownerID string, status types.ViolationStatus) *violation.Violation {
	fine := decimal.NewFromInt(100)
	v := &violation.Violation{
		ID:              id,
		OwnerID:         ownerID,
		ViolationStatus: status,
		Category:        "Landscaping",
		Description:     "Overgrown hedge",
		Location:        "Front yard",
		FineAmount:      &fine,
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}
	s.NoError(s.GetStores().ViolationRepo.Create(s.GetContext(), v))
	return v
}

func (s *ViolationServiceSuite) TestCreateRequiresManager() {
	ctx := testutil.SetupContext(types.RoleOwner)
	_, err := s.service.Create(ctx, &violation.Violation{
		OwnerID:     "owner_1",
		Category:    "Parking",
		Description: "Blocked hydrant",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	ctx = testutil.SetupContext(types.RoleManager)
	created, err := s.service.Create(ctx, &violation.Violation{
		OwnerID:     "owner_1",
		Category:    "Parking",
		Description: "Blocked hydrant",
	})
	s.NoError(err)
	s.Equal(types.ViolationStatusNew, created.ViolationStatus)
	s.Equal(1, s.GetStores().AuditLogRepo.Count())
}

// TestTransitionTable walks every (from, to) pair: the engine must
// accept exactly the edges in the transition table, plus the
// same-status no-op.
func (s *ViolationServiceSuite) TestTransitionTable() {
	statuses := []types.ViolationStatus{
		types.ViolationStatusNew,
		types.ViolationStatusUnderReview,
		types.ViolationStatusWarningSent,
		types.ViolationStatusHearing,
		types.ViolationStatusFineActive,
		types.ViolationStatusResolved,
		types.ViolationStatusArchived,
	}

	s.seedOwner("owner_table", "pat@example.com")

	for _, from := range statuses {
		for _, to := range statuses {
			id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VIOLATION)
			s.seedViolation(id, "owner_table", from)

			_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
				ViolationID:  id,
				TargetStatus: to,
			})

			if from == to || from.CanTransitionTo(to) {
				s.NoError(err, "expected %s -> %s to be accepted", from, to)
			} else {
				s.Error(err, "expected %s -> %s to be rejected", from, to)
				s.True(ierr.IsIllegalTransition(err), "expected illegal transition for %s -> %s", from, to)
			}
		}
	}
}

func (s *ViolationServiceSuite) TestIdempotentRetryHasNoSideEffects() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)

	_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusWarningSent,
	})
	s.NoError(err)

	auditCount := s.GetStores().AuditLogRepo.Count()
	notices, err := s.GetStores().NoticeRepo.ListByViolation(s.GetContext(), "viol_1")
	s.NoError(err)
	noticeCount := len(notices)
	notificationCount := s.GetStores().NotificationRepo.Count()

	// Retrying the same transition with no field changes is a no-op
	got, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusWarningSent,
	})
	s.NoError(err)
	s.Equal(types.ViolationStatusWarningSent, got.ViolationStatus)

	s.Equal(auditCount, s.GetStores().AuditLogRepo.Count())
	notices, err = s.GetStores().NoticeRepo.ListByViolation(s.GetContext(), "viol_1")
	s.NoError(err)
	s.Equal(noticeCount, len(notices))
	s.Equal(notificationCount, s.GetStores().NotificationRepo.Count())
}

func (s *ViolationServiceSuite) TestFineActivationRequiresAmount() {
	s.seedOwner("owner_1", "pat@example.com")
	v := s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)
	v.FineAmount = nil
	s.NoError(s.GetStores().ViolationRepo.Update(s.GetContext(), v))

	_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusFineActive,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ViolationServiceSuite) TestFineInvoiceCreatedExactlyOnce() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)

	amount := decimal.NewFromInt(250)
	_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusFineActive,
		FineAmount:   &amount,
	})
	s.NoError(err)

	entries, err := s.GetStores().LedgerRepo.ListByOwner(s.GetContext(), "owner_1")
	s.NoError(err)
	s.Len(entries, 1)
	s.Equal("Violation fine #viol_1", entries[0].Memo)
	s.True(entries[0].Amount.Equal(amount))

	// A same-status call with a changed amount updates the field but the
	// marker guard prevents a second invoice
	revised := decimal.NewFromInt(300)
	got, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusFineActive,
		FineAmount:   &revised,
	})
	s.NoError(err)
	s.True(got.FineAmount.Equal(revised))

	entries, err = s.GetStores().LedgerRepo.ListByOwner(s.GetContext(), "owner_1")
	s.NoError(err)
	s.Len(entries, 1)
}

func (s *ViolationServiceSuite) TestWarningNoticeRendersAndEmails() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)

	_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusWarningSent,
	})
	s.NoError(err)

	notices, err := s.GetStores().NoticeRepo.ListByViolation(s.GetContext(), "viol_1")
	s.NoError(err)
	s.Len(notices, 1)
	s.Equal(types.NoticeTypeEmail, notices[0].NoticeType)
	s.Equal("VIOLATION_WARNING", notices[0].TemplateKey)
	s.Equal("Violation warning: Landscaping", notices[0].Subject)
	s.Contains(notices[0].Body, "Pat Garcia")
	s.Contains(notices[0].Body, "Overgrown hedge")
	s.NotNil(notices[0].DocumentPath)

	sent := s.GetEmailSender().Messages()
	s.Len(sent, 1)
	s.Equal("pat@example.com", sent[0].To)
}

func (s *ViolationServiceSuite) TestPostalNoticeWhenNoEmailOnFile() {
	s.seedOwner("owner_1", "")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)

	_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusWarningSent,
	})
	s.NoError(err)

	notices, err := s.GetStores().NoticeRepo.ListByViolation(s.GetContext(), "viol_1")
	s.NoError(err)
	s.Len(notices, 1)
	s.Equal(types.NoticeTypePostal, notices[0].NoticeType)
	s.Empty(s.GetEmailSender().Messages())
}

func (s *ViolationServiceSuite) TestEmailFailureDoesNotAbortTransition() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)
	s.GetEmailSender().FailWith = errors.New("smtp down")

	got, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusWarningSent,
	})
	s.NoError(err)
	s.Equal(types.ViolationStatusWarningSent, got.ViolationStatus)

	notices, err := s.GetStores().NoticeRepo.ListByViolation(s.GetContext(), "viol_1")
	s.NoError(err)
	s.Len(notices, 1)
}

func (s *ViolationServiceSuite) TestAuditFailureAbortsTransition() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusNew)
	s.GetStores().AuditLogRepo.FailNext = errors.New("sink unavailable")

	_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusUnderReview,
	})
	s.Error(err)
}

func (s *ViolationServiceSuite) TestTransitionNotifiesGovernanceAndLinkedUsers() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)
	s.NoError(s.GetStores().OwnerRepo.LinkUser(s.GetContext(), "owner_1", "user_owner"))
	s.seedUser("user_board", "board@example.com", types.RoleBoard)

	_, err := s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusWarningSent,
	})
	s.NoError(err)

	boardRows, err := s.GetStores().NotificationRepo.ListByRecipient(s.GetContext(), "user_board")
	s.NoError(err)
	s.Len(boardRows, 1)
	s.Equal(types.NotificationLevelWarning, boardRows[0].Level)
	s.Contains(boardRows[0].Message, "warning")

	ownerRows, err := s.GetStores().NotificationRepo.ListByRecipient(s.GetContext(), "user_owner")
	s.NoError(err)
	s.Len(ownerRows, 1)
}

func (s *ViolationServiceSuite) TestSubmitAppealRequiresOwnViolation() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusWarningSent)
	s.NoError(s.GetStores().OwnerRepo.LinkUser(s.GetContext(), "owner_1", "user_owner"))

	// An unlinked caller may not appeal
	ctx := testutil.ContextAs("user_stranger", types.RoleOwner)
	_, err := s.service.SubmitAppeal(ctx, "viol_1", "not my hedge")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	ctx = testutil.ContextAs("user_owner", types.RoleOwner)
	appeal, err := s.service.SubmitAppeal(ctx, "viol_1", "hedge was trimmed last week")
	s.NoError(err)
	s.Equal(types.AppealStatusPending, appeal.AppealStatus)
}

func (s *ViolationServiceSuite) TestDecideAppealOnceAndApprovalResolves() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusWarningSent)
	s.NoError(s.GetStores().OwnerRepo.LinkUser(s.GetContext(), "owner_1", "user_owner"))

	ownerCtx := testutil.ContextAs("user_owner", types.RoleOwner)
	appeal, err := s.service.SubmitAppeal(ownerCtx, "viol_1", "hedge was trimmed last week")
	s.NoError(err)

	boardCtx := testutil.ContextAs("user_board", types.RoleBoard)
	decided, err := s.service.DecideAppeal(boardCtx, appeal.ID, true, "verified on site")
	s.NoError(err)
	s.Equal(types.AppealStatusApproved, decided.AppealStatus)
	s.NotNil(decided.DecidedAt)
	s.NotNil(decided.ReviewerID)

	v, err := s.service.Get(s.GetContext(), "viol_1")
	s.NoError(err)
	s.Equal(types.ViolationStatusResolved, v.ViolationStatus)

	// The decision is recorded exactly once
	_, err = s.service.DecideAppeal(boardCtx, appeal.ID, false, "second thoughts")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ViolationServiceSuite) TestApproveAppealRejectedWhileViolationUnresolvable() {
	s.seedOwner("owner_1", "pat@example.com")
	s.seedViolation("viol_1", "owner_1", types.ViolationStatusUnderReview)
	s.NoError(s.GetStores().OwnerRepo.LinkUser(s.GetContext(), "owner_1", "user_owner"))

	ownerCtx := testutil.ContextAs("user_owner", types.RoleOwner)
	appeal, err := s.service.SubmitAppeal(ownerCtx, "viol_1", "hedge was trimmed last week")
	s.NoError(err)

	// UNDER_REVIEW has no edge to RESOLVED, so approval must be refused
	// before the appeal is touched
	boardCtx := testutil.ContextAs("user_board", types.RoleBoard)
	_, err = s.service.DecideAppeal(boardCtx, appeal.ID, true, "verified on site")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	stored, err := s.GetStores().AppealRepo.Get(s.GetContext(), appeal.ID)
	s.NoError(err)
	s.Equal(types.AppealStatusPending, stored.AppealStatus)
	s.Nil(stored.DecidedAt)

	v, err := s.service.Get(s.GetContext(), "viol_1")
	s.NoError(err)
	s.Equal(types.ViolationStatusUnderReview, v.ViolationStatus)

	// Once the violation advances, the same appeal is decidable
	_, err = s.service.Transition(s.GetContext(), TransitionViolationRequest{
		ViolationID:  "viol_1",
		TargetStatus: types.ViolationStatusWarningSent,
	})
	s.NoError(err)

	decided, err := s.service.DecideAppeal(boardCtx, appeal.ID, true, "verified on site")
	s.NoError(err)
	s.Equal(types.AppealStatusApproved, decided.AppealStatus)

	v, err = s.service.Get(s.GetContext(), "viol_1")
	s.NoError(err)
	s.Equal(types.ViolationStatusResolved, v.ViolationStatus)
}

func (s *ViolationServiceSuite) seedUser(id, email string, roles ...types.Role) {
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), &user.User{
		ID:    id,
		Email: email,
		Name:  "Test User",
		Roles: roles,
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}))
}
