package budget

import (
	"time"

	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
)

// Budget is a fiscal-year budget holding operating line items and
// reserve-plan items. It transitions DRAFT -> APPROVED once approvals
// reach the board quorum and is then locked against line-item edits.
type Budget struct {
	ID           string             `db:"id" json:"id"`
	FiscalYear   int                `db:"fiscal_year" json:"fiscal_year"`
	Title        string             `db:"title" json:"title"`
	BudgetStatus types.BudgetStatus `db:"budget_status" json:"budget_status"`
	LockedAt     *time.Time         `db:"locked_at" json:"locked_at,omitempty"`
	LockedBy     *string            `db:"locked_by" json:"locked_by,omitempty"`
	types.BaseModel
}

// IsLocked reports whether line items may no longer be edited
func (b *Budget) IsLocked() bool {
	return b.BudgetStatus == types.BudgetStatusApproved
}

// LineItem is one operating line of a budget
type LineItem struct {
	ID        string          `db:"id" json:"id"`
	BudgetID  string          `db:"budget_id" json:"budget_id"`
	Category  string          `db:"category" json:"category"`
	Name      string          `db:"name" json:"name"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// ReservePlanItem is a future capital expense funded by annual
// reserve contributions.
type ReservePlanItem struct {
	ID             string          `db:"id" json:"id"`
	BudgetID       string          `db:"budget_id" json:"budget_id"`
	Name           string          `db:"name" json:"name"`
	TargetYear     int             `db:"target_year" json:"target_year"`
	EstimatedCost  decimal.Decimal `db:"estimated_cost" json:"estimated_cost"`
	InflationRate  decimal.Decimal `db:"inflation_rate" json:"inflation_rate"`
	CurrentFunding decimal.Decimal `db:"current_funding" json:"current_funding"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Approval is one board member's approval of a budget, unique per
// (budget, board member).
type Approval struct {
	ID         string    `db:"id" json:"id"`
	BudgetID   string    `db:"budget_id" json:"budget_id"`
	MemberID   string    `db:"member_id" json:"member_id"`
	ApprovedAt time.Time `db:"approved_at" json:"approved_at"`
}

// ReserveContribution is the computed amortization for a reserve item.
// Monetary outputs are rounded half-up to 2 decimal places at this
// reporting boundary, not during intermediate arithmetic.
type ReserveContribution struct {
	YearsRemaining     int             `json:"years_remaining"`
	IsValidTargetYear  bool            `json:"is_valid_target_year"`
	FutureCost         decimal.Decimal `json:"future_cost"`
	RemainingNeeded    decimal.Decimal `json:"remaining_needed"`
	AnnualContribution decimal.Decimal `json:"annual_contribution"`
}
