package types

import (
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/samber/lo"
)

// LedgerEntryType is the sign-carrying type of an owner ledger entry.
// Invoices increase the balance owed; payments decrease it.
type LedgerEntryType string

const (
	LedgerEntryTypeInvoice LedgerEntryType = "INVOICE"
	LedgerEntryTypePayment LedgerEntryType = "PAYMENT"
)

func (t LedgerEntryType) Validate() error {
	allowed := []LedgerEntryType{LedgerEntryTypeInvoice, LedgerEntryTypePayment}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid ledger entry type").
			WithHint("Please provide a valid ledger entry type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LateFeeGraceDays is the calendar-day delay from an invoice's created_at
// before a late fee may be assessed. Kept as a single constant pending a
// per-policy configuration decision.
const LateFeeGraceDays = 30
