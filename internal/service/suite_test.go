package service

import (
	"github.com/openhoa/openhoa/internal/testutil"
)

// newTestServiceParams wires the in-memory stores and test doubles into
// a ServiceParams for the suite under test.
func newTestServiceParams(base *testutil.BaseServiceTestSuite) ServiceParams {
	stores := base.GetStores()
	return ServiceParams{
		Logger:       base.GetLogger(),
		Config:       base.GetConfig(),
		EmailSender:  base.GetEmailSender(),
		DocGenerator: base.GetDocGenerator(),
		PubSub:       base.GetPubSub(),

		UserRepo:            stores.UserRepo,
		OwnerRepo:           stores.OwnerRepo,
		ViolationRepo:       stores.ViolationRepo,
		NoticeRepo:          stores.NoticeRepo,
		AppealRepo:          stores.AppealRepo,
		ARCRepo:             stores.ARCRepo,
		ARCReviewRepo:       stores.ARCReviewRepo,
		ARCConditionRepo:    stores.ARCConditionRepo,
		ElectionRepo:        stores.ElectionRepo,
		CandidateRepo:       stores.CandidateRepo,
		BallotRepo:          stores.BallotRepo,
		VoteRepo:            stores.VoteRepo,
		BudgetRepo:          stores.BudgetRepo,
		BudgetLineItemRepo:  stores.BudgetLineItemRepo,
		ReservePlanItemRepo: stores.ReservePlanItemRepo,
		BudgetApprovalRepo:  stores.BudgetApprovalRepo,
		LedgerRepo:          stores.LedgerRepo,
		FineScheduleRepo:    stores.FineScheduleRepo,
		AuditLogRepo:        stores.AuditLogRepo,
		NotificationRepo:    stores.NotificationRepo,
	}
}
