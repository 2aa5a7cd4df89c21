package testutil

import (
	"context"
	"time"

	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/docgen"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/openhoa/openhoa/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repository implementations for testing.
// Concrete types are exposed so tests can reach the store helpers
// (counts, failure hooks).
type Stores struct {
	UserRepo            *InMemoryUserStore
	OwnerRepo           *InMemoryOwnerStore
	ViolationRepo       *InMemoryViolationStore
	NoticeRepo          *InMemoryNoticeStore
	AppealRepo          *InMemoryAppealStore
	ARCRepo             *InMemoryARCStore
	ARCReviewRepo       *InMemoryARCReviewStore
	ARCConditionRepo    *InMemoryARCConditionStore
	ElectionRepo        *InMemoryElectionStore
	CandidateRepo       *InMemoryCandidateStore
	BallotRepo          *InMemoryBallotStore
	VoteRepo            *InMemoryVoteStore
	BudgetRepo          *InMemoryBudgetStore
	BudgetLineItemRepo  *InMemoryBudgetLineItemStore
	ReservePlanItemRepo *InMemoryReservePlanItemStore
	BudgetApprovalRepo  *InMemoryBudgetApprovalStore
	LedgerRepo          *InMemoryLedgerStore
	FineScheduleRepo    *InMemoryFineScheduleStore
	AuditLogRepo        *InMemoryAuditLogStore
	NotificationRepo    *InMemoryNotificationStore
}

// BaseServiceTestSuite provides common functionality for all service
// test suites.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	stores      Stores
	pubsub      *InMemoryPubSub
	emailSender *CaptureEmailSender
	docGen      docgen.Generator
	logger      *logger.Logger
	config      *config.Configuration
	now         time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()
	cfg := config.GetDefaultConfig()

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.docGen = docgen.NewLogGenerator(s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.pubsub = NewInMemoryPubSub()
	s.emailSender = NewCaptureEmailSender()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
	s.pubsub.Clear()
	s.emailSender.Clear()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:            NewInMemoryUserStore(),
		OwnerRepo:           NewInMemoryOwnerStore(),
		ViolationRepo:       NewInMemoryViolationStore(),
		NoticeRepo:          NewInMemoryNoticeStore(),
		AppealRepo:          NewInMemoryAppealStore(),
		ARCRepo:             NewInMemoryARCStore(),
		ARCReviewRepo:       NewInMemoryARCReviewStore(),
		ARCConditionRepo:    NewInMemoryARCConditionStore(),
		ElectionRepo:        NewInMemoryElectionStore(),
		CandidateRepo:       NewInMemoryCandidateStore(),
		BallotRepo:          NewInMemoryBallotStore(),
		VoteRepo:            NewInMemoryVoteStore(),
		BudgetRepo:          NewInMemoryBudgetStore(),
		BudgetLineItemRepo:  NewInMemoryBudgetLineItemStore(),
		ReservePlanItemRepo: NewInMemoryReservePlanItemStore(),
		BudgetApprovalRepo:  NewInMemoryBudgetApprovalStore(),
		LedgerRepo:          NewInMemoryLedgerStore(),
		FineScheduleRepo:    NewInMemoryFineScheduleStore(),
		AuditLogRepo:        NewInMemoryAuditLogStore(),
		NotificationRepo:    NewInMemoryNotificationStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.Clear()
	s.stores.OwnerRepo.Clear()
	s.stores.ViolationRepo.Clear()
	s.stores.NoticeRepo.Clear()
	s.stores.AppealRepo.Clear()
	s.stores.ARCRepo.Clear()
	s.stores.ARCReviewRepo.Clear()
	s.stores.ARCConditionRepo.Clear()
	s.stores.ElectionRepo.Clear()
	s.stores.CandidateRepo.Clear()
	s.stores.BallotRepo.Clear()
	s.stores.VoteRepo.Clear()
	s.stores.BudgetRepo.Clear()
	s.stores.BudgetLineItemRepo.Clear()
	s.stores.ReservePlanItemRepo.Clear()
	s.stores.BudgetApprovalRepo.Clear()
	s.stores.LedgerRepo.Clear()
	s.stores.FineScheduleRepo.Clear()
	s.stores.AuditLogRepo.Clear()
	s.stores.NotificationRepo.Clear()
}

// GetContext returns the test context authenticated as the default user
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContextRoles swaps the test context's caller roles
func (s *BaseServiceTestSuite) SetContextRoles(roles ...types.Role) {
	s.ctx = SetupContext(roles...)
}

// GetStores returns the in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetPubSub returns the recording publisher
func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubsub
}

// GetEmailSender returns the recording email sender
func (s *BaseServiceTestSuite) GetEmailSender() *CaptureEmailSender {
	return s.emailSender
}

// GetDocGenerator returns the test document generator
func (s *BaseServiceTestSuite) GetDocGenerator() docgen.Generator {
	return s.docGen
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the timestamp captured at test setup
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
