package ledger

import (
	"time"

	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
)

// Entry is one signed line of an owner's ledger. Invoices carry positive
// amounts, payments negative. The running balance is always recomputed
// as the ordered sum of entries, never cached.
type Entry struct {
	ID        string                `db:"id" json:"id"`
	OwnerID   string                `db:"owner_id" json:"owner_id"`
	EntryType types.LedgerEntryType `db:"entry_type" json:"entry_type"`
	Amount    decimal.Decimal       `db:"amount" json:"amount"`
	Memo      string                `db:"memo" json:"memo"`
	DueDate   *time.Time            `db:"due_date" json:"due_date,omitempty"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
	CreatedBy string                `db:"created_by" json:"created_by"`
}

// SignedAmount returns the entry's contribution to the running balance
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.EntryType == types.LedgerEntryTypePayment {
		return e.Amount.Neg()
	}
	return e.Amount
}

func (e *Entry) Validate() error {
	if err := e.EntryType.Validate(); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return types.NewFieldValidationError("amount", "must be non negative")
	}
	return nil
}

// FineSchedule defines how a fine is computed for a violation category
type FineSchedule struct {
	ID         string          `db:"id" json:"id"`
	Category   string          `db:"category" json:"category"`
	FlatAmount decimal.Decimal `db:"flat_amount" json:"flat_amount"`
	// LateFeePercent is applied to an invoice's amount once past the grace
	// window; zero means the flat amount applies instead
	LateFeePercent decimal.Decimal `db:"late_fee_percent" json:"late_fee_percent"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}
