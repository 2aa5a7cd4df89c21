package service

import (
	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/docgen"
	"github.com/openhoa/openhoa/internal/domain/arc"
	"github.com/openhoa/openhoa/internal/domain/auditlog"
	"github.com/openhoa/openhoa/internal/domain/budget"
	"github.com/openhoa/openhoa/internal/domain/election"
	"github.com/openhoa/openhoa/internal/domain/ledger"
	"github.com/openhoa/openhoa/internal/domain/notification"
	"github.com/openhoa/openhoa/internal/domain/owner"
	"github.com/openhoa/openhoa/internal/domain/user"
	"github.com/openhoa/openhoa/internal/domain/violation"
	"github.com/openhoa/openhoa/internal/email"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/pubsub"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// External collaborators
	EmailSender  email.Sender
	DocGenerator docgen.Generator
	PubSub       pubsub.Publisher

	// Repositories
	UserRepo            user.Repository
	OwnerRepo           owner.Repository
	ViolationRepo       violation.Repository
	NoticeRepo          violation.NoticeRepository
	AppealRepo          violation.AppealRepository
	ARCRepo             arc.Repository
	ARCReviewRepo       arc.ReviewRepository
	ARCConditionRepo    arc.ConditionRepository
	ElectionRepo        election.Repository
	CandidateRepo       election.CandidateRepository
	BallotRepo          election.BallotRepository
	VoteRepo            election.VoteRepository
	BudgetRepo          budget.Repository
	BudgetLineItemRepo  budget.LineItemRepository
	ReservePlanItemRepo budget.ReservePlanItemRepository
	BudgetApprovalRepo  budget.ApprovalRepository
	LedgerRepo          ledger.Repository
	FineScheduleRepo    ledger.FineScheduleRepository
	AuditLogRepo        auditlog.Repository
	NotificationRepo    notification.Repository
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	emailSender email.Sender,
	docGenerator docgen.Generator,
	pubSub pubsub.PubSub,
	userRepo user.Repository,
	ownerRepo owner.Repository,
	violationRepo violation.Repository,
	noticeRepo violation.NoticeRepository,
	appealRepo violation.AppealRepository,
	arcRepo arc.Repository,
	arcReviewRepo arc.ReviewRepository,
	arcConditionRepo arc.ConditionRepository,
	electionRepo election.Repository,
	candidateRepo election.CandidateRepository,
	ballotRepo election.BallotRepository,
	voteRepo election.VoteRepository,
	budgetRepo budget.Repository,
	budgetLineItemRepo budget.LineItemRepository,
	reservePlanItemRepo budget.ReservePlanItemRepository,
	budgetApprovalRepo budget.ApprovalRepository,
	ledgerRepo ledger.Repository,
	fineScheduleRepo ledger.FineScheduleRepository,
	auditLogRepo auditlog.Repository,
	notificationRepo notification.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:              logger,
		Config:              config,
		EmailSender:         emailSender,
		DocGenerator:        docGenerator,
		PubSub:              pubSub,
		UserRepo:            userRepo,
		OwnerRepo:           ownerRepo,
		ViolationRepo:       violationRepo,
		NoticeRepo:          noticeRepo,
		AppealRepo:          appealRepo,
		ARCRepo:             arcRepo,
		ARCReviewRepo:       arcReviewRepo,
		ARCConditionRepo:    arcConditionRepo,
		ElectionRepo:        electionRepo,
		CandidateRepo:       candidateRepo,
		BallotRepo:          ballotRepo,
		VoteRepo:            voteRepo,
		BudgetRepo:          budgetRepo,
		BudgetLineItemRepo:  budgetLineItemRepo,
		ReservePlanItemRepo: reservePlanItemRepo,
		BudgetApprovalRepo:  budgetApprovalRepo,
		LedgerRepo:          ledgerRepo,
		FineScheduleRepo:    fineScheduleRepo,
		AuditLogRepo:        auditLogRepo,
		NotificationRepo:    notificationRepo,
	}
}
