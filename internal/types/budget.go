package types

import (
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/samber/lo"
)

// BudgetStatus represents the approval state of a fiscal-year budget
type BudgetStatus string

const (
	BudgetStatusDraft    BudgetStatus = "DRAFT"
	BudgetStatusApproved BudgetStatus = "APPROVED"
)

func (s BudgetStatus) String() string {
	return string(s)
}

func (s BudgetStatus) Validate() error {
	allowed := []BudgetStatus{BudgetStatusDraft, BudgetStatusApproved}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid budget status").
			WithHint("Please provide a valid budget status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrInvalidState)
	}
	return nil
}
