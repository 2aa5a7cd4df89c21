package service

import (
	"testing"
	"time"

	"github.com/openhoa/openhoa/internal/domain/ledger"
	"github.com/openhoa/openhoa/internal/testutil"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LedgerService
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLedgerService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *LedgerServiceSuite) seedEntry(ownerID string, entryType types.LedgerEntryType, amount int64, memo string, createdAt time.Time) {
	s.NoError(s.GetStores().LedgerRepo.Create(s.GetContext(), &ledger.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY),
		OwnerID:   ownerID,
		EntryType: entryType,
		Amount:    decimal.NewFromInt(amount),
		Memo:      memo,
		CreatedAt: createdAt,
		CreatedBy: types.DefaultUserID,
	}))
}

func (s *LedgerServiceSuite) TestRunningBalanceSignsAndOrders() {
	now := time.Now().UTC()
	// Inserted out of order; the balance is the ordered signed sum
	s.seedEntry("owner_1", types.LedgerEntryTypePayment, 40, "March payment", now.Add(-time.Hour))
	s.seedEntry("owner_1", types.LedgerEntryTypeInvoice, 100, "March assessment", now.Add(-2*time.Hour))
	s.seedEntry("owner_1", types.LedgerEntryTypeInvoice, 25, "Pool key", now)

	balance, err := s.service.GetRunningBalance(s.GetContext(), "owner_1")
	s.NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(85)))

	// Another owner's ledger is untouched
	other, err := s.service.GetRunningBalance(s.GetContext(), "owner_2")
	s.NoError(err)
	s.True(other.IsZero())
}

func (s *LedgerServiceSuite) TestRecordEntryRejectsNegativeAmount() {
	err := s.service.RecordEntry(s.GetContext(), &ledger.Entry{
		OwnerID:   "owner_1",
		EntryType: types.LedgerEntryTypeInvoice,
		Amount:    decimal.NewFromInt(-10),
		Memo:      "bad entry",
	})
	s.Error(err)
}

func (s *LedgerServiceSuite) TestFineInvoiceIsIdempotent() {
	amount := decimal.NewFromInt(250)

	entry, created, err := s.service.CreateFineInvoice(s.GetContext(), "viol_1", "owner_1", amount)
	s.NoError(err)
	s.True(created)
	s.Equal("Violation fine #viol_1", entry.Memo)
	s.Equal(types.LedgerEntryTypeInvoice, entry.EntryType)

	again, created, err := s.service.CreateFineInvoice(s.GetContext(), "viol_1", "owner_1", amount)
	s.NoError(err)
	s.False(created)
	s.Equal(entry.ID, again.ID)

	entries, err := s.GetStores().LedgerRepo.ListByOwner(s.GetContext(), "owner_1")
	s.NoError(err)
	s.Len(entries, 1)
}

func (s *LedgerServiceSuite) TestLateFeeAssessmentSkipsGraceWindow() {
	now := time.Now().UTC()
	schedule := &ledger.FineSchedule{
		ID:             "fine_1",
		Category:       "Assessment",
		LateFeePercent: decimal.NewFromInt(10),
	}

	s.seedEntry("owner_1", types.LedgerEntryTypeInvoice, 100, "January assessment", now.AddDate(0, 0, -45))
	s.seedEntry("owner_1", types.LedgerEntryTypeInvoice, 100, "Recent assessment", now.AddDate(0, 0, -5))
	s.seedEntry("owner_1", types.LedgerEntryTypePayment, 100, "Old payment", now.AddDate(0, 0, -60))

	assessed, err := s.service.RunLateFeeAssessment(s.GetContext(), "owner_1", schedule, now)
	s.NoError(err)
	s.Len(assessed, 1)
	s.True(assessed[0].Amount.Equal(decimal.NewFromInt(10)))
	s.Contains(assessed[0].Memo, "Late fee for ")

	// A re-run assesses nothing new
	assessed, err = s.service.RunLateFeeAssessment(s.GetContext(), "owner_1", schedule, now)
	s.NoError(err)
	s.Empty(assessed)
}

func (s *LedgerServiceSuite) TestLateFeeAmountPercentOrFlat() {
	invoice := decimal.NewFromInt(200)

	percent := &ledger.FineSchedule{LateFeePercent: decimal.RequireFromString("7.5")}
	s.Equal("15", LateFeeAmount(invoice, percent).String())

	flat := &ledger.FineSchedule{FlatAmount: decimal.NewFromInt(25)}
	s.Equal("25", LateFeeAmount(invoice, flat).String())

	s.True(LateFeeAmount(invoice, nil).IsZero())
}
