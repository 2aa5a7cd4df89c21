package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/openhoa/openhoa/internal/domain/ledger"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
)

// LedgerService owns the owner ledger: signed entries, the running
// balance, and the deterministic fine-invoice marker used by the
// violation engine.
type LedgerService interface {
	RecordEntry(ctx context.Context, entry *ledger.Entry) error
	GetRunningBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)
	CreateFineInvoice(ctx context.Context, violationID, ownerID string, amount decimal.Decimal) (*ledger.Entry, bool, error)
	RunLateFeeAssessment(ctx context.Context, ownerID string, schedule *ledger.FineSchedule, asOf time.Time) ([]*ledger.Entry, error)
}

type ledgerService struct {
	ServiceParams
}

// NewLedgerService creates a new ledger service
func NewLedgerService(params ServiceParams) LedgerService {
	return &ledgerService{ServiceParams: params}
}

// FineInvoiceMemo is the deterministic marker keying a violation's fine
// invoice. Query-before-insert on this marker is what makes a repeated
// FINE_ACTIVE transition idempotent.
func FineInvoiceMemo(violationID string) string {
	return fmt.Sprintf("Violation fine #%s", violationID)
}

func (s *ledgerService) RecordEntry(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.CreatedBy == "" {
		entry.CreatedBy = types.GetUserID(ctx)
	}

	if err := s.LedgerRepo.Create(ctx, entry); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record ledger entry").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// GetRunningBalance recomputes the balance as the ordered sum of signed
// entries. It is never cached; drift is worse than the extra read.
func (s *ledgerService) GetRunningBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	entries, err := s.LedgerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to load owner ledger").
			Mark(ierr.ErrDatabase)
	}

	// Repository order is created_at then insertion order; keep it stable
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	balance := decimal.Zero
	for _, entry := range entries {
		balance = balance.Add(entry.SignedAmount())
	}
	return balance, nil
}

// CreateFineInvoice creates the payable invoice for a violation fine.
// Returns the entry and whether it was newly created; an existing entry
// with the marker memo is returned as-is.
func (s *ledgerService) CreateFineInvoice(ctx context.Context, violationID, ownerID string, amount decimal.Decimal) (*ledger.Entry, bool, error) {
	memo := FineInvoiceMemo(violationID)

	existing, err := s.LedgerRepo.GetByOwnerAndMemo(ctx, ownerID, memo)
	if err == nil && existing != nil {
		return existing, false, nil
	}

	entry := &ledger.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY),
		OwnerID:   ownerID,
		EntryType: types.LedgerEntryTypeInvoice,
		Amount:    amount,
		Memo:      memo,
		CreatedAt: time.Now().UTC(),
		CreatedBy: types.GetUserID(ctx),
	}
	if err := s.RecordEntry(ctx, entry); err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

// RunLateFeeAssessment appends a late-fee invoice for every invoice past
// the grace window that has not yet been assessed. Safe to re-run: each
// fee carries a marker memo checked before insert.
func (s *ledgerService) RunLateFeeAssessment(ctx context.Context, ownerID string, schedule *ledger.FineSchedule, asOf time.Time) ([]*ledger.Entry, error) {
	entries, err := s.LedgerRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load owner ledger").
			Mark(ierr.ErrDatabase)
	}

	var assessed []*ledger.Entry
	for _, entry := range entries {
		if entry.EntryType != types.LedgerEntryTypeInvoice {
			continue
		}
		if asOf.Sub(entry.CreatedAt) < types.LateFeeGraceDays*24*time.Hour {
			continue
		}

		memo := fmt.Sprintf("Late fee for %s", entry.ID)
		if existing, err := s.LedgerRepo.GetByOwnerAndMemo(ctx, ownerID, memo); err == nil && existing != nil {
			continue
		}

		fee := LateFeeAmount(entry.Amount, schedule)
		if fee.IsZero() {
			continue
		}

		feeEntry := &ledger.Entry{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEDGER_ENTRY),
			OwnerID:   ownerID,
			EntryType: types.LedgerEntryTypeInvoice,
			Amount:    fee,
			Memo:      memo,
			CreatedAt: asOf,
			CreatedBy: types.GetUserID(ctx),
		}
		if err := s.RecordEntry(ctx, feeEntry); err != nil {
			return assessed, err
		}
		assessed = append(assessed, feeEntry)
	}

	return assessed, nil
}

// LateFeeAmount computes the fee for an overdue invoice amount: the
// schedule percentage when set, otherwise the flat amount. Rounded at
// this reporting boundary.
func LateFeeAmount(invoiceAmount decimal.Decimal, schedule *ledger.FineSchedule) decimal.Decimal {
	if schedule == nil {
		return decimal.Zero
	}
	if schedule.LateFeePercent.IsPositive() {
		return invoiceAmount.Mul(schedule.LateFeePercent).Div(decimal.NewFromInt(100)).Round(2)
	}
	return schedule.FlatAmount.Round(2)
}
