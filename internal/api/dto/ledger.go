package dto

import (
	"time"

	"github.com/openhoa/openhoa/internal/domain/ledger"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
)

// RecordEntryRequest appends a signed line to an owner's ledger
type RecordEntryRequest struct {
	OwnerID   string          `json:"owner_id" binding:"required"`
	EntryType string          `json:"entry_type" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
}

func (r *RecordEntryRequest) ToEntry() *ledger.Entry {
	return &ledger.Entry{
		OwnerID:   r.OwnerID,
		EntryType: types.LedgerEntryType(r.EntryType),
		Amount:    r.Amount,
		Memo:      r.Memo,
		DueDate:   r.DueDate,
	}
}

// LateFeeRunRequest assesses late fees on an owner's overdue invoices
type LateFeeRunRequest struct {
	OwnerID        string     `json:"owner_id" binding:"required"`
	FineScheduleID string     `json:"fine_schedule_id" binding:"required"`
	AsOf           *time.Time `json:"as_of,omitempty"`
}

// BalanceResponse is an owner's recomputed running balance
type BalanceResponse struct {
	OwnerID string          `json:"owner_id"`
	Balance decimal.Decimal `json:"balance"`
}
