package service

import (
	"context"
	"math"
	"time"

	"github.com/openhoa/openhoa/internal/domain/budget"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
)

// BudgetService owns fiscal-year budgets: line items, board approvals
// with quorum auto-lock, and reserve amortization.
type BudgetService interface {
	Create(ctx context.Context, b *budget.Budget) (*budget.Budget, error)
	Get(ctx context.Context, id string) (*budget.Budget, error)

	AddLineItem(ctx context.Context, item *budget.LineItem) (*budget.LineItem, error)
	UpdateLineItem(ctx context.Context, item *budget.LineItem) (*budget.LineItem, error)
	DeleteLineItem(ctx context.Context, id string) error
	AssessmentTotal(ctx context.Context, budgetID string) (decimal.Decimal, error)

	RequiredApprovals(ctx context.Context) (int, error)
	Approve(ctx context.Context, budgetID string) (*budget.Budget, error)
	RevokeApproval(ctx context.Context, budgetID string) (*budget.Budget, error)

	AddReservePlanItem(ctx context.Context, item *budget.ReservePlanItem) (*budget.ReservePlanItem, error)
	ReserveContribution(ctx context.Context, itemID string) (*budget.ReserveContribution, error)
}

type budgetService struct {
	ServiceParams
	audit AuditService
}

// NewBudgetService creates a new budget service
func NewBudgetService(params ServiceParams) BudgetService {
	return &budgetService{
		ServiceParams: params,
		audit:         NewAuditService(params),
	}
}

func (s *budgetService) Create(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	if b.FiscalYear <= 0 {
		return nil, ierr.NewError("fiscal year required").
			WithHint("A valid fiscal year is required").
			Mark(ierr.ErrValidation)
	}
	if b.ID == "" {
		b.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BUDGET)
	}
	b.BudgetStatus = types.BudgetStatusDraft
	b.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.BudgetRepo.Create(ctx, b); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create budget").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "budget.created", "budget", b.ID, nil, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *budgetService) Get(ctx context.Context, id string) (*budget.Budget, error) {
	b, err := s.BudgetRepo.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Budget not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return b, nil
}

// requireUnlocked loads the budget and rejects line-item mutation once
// the budget is APPROVED.
func (s *budgetService) requireUnlocked(ctx context.Context, budgetID string) (*budget.Budget, error) {
	b, err := s.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if b.IsLocked() {
		return nil, ierr.NewError("budget locked").
			WithHint("An approved budget may not be edited").
			WithReportableDetails(map[string]any{"budget_id": b.ID}).
			Mark(ierr.ErrInvalidOperation)
	}
	return b, nil
}

func (s *budgetService) AddLineItem(ctx context.Context, item *budget.LineItem) (*budget.LineItem, error) {
	if _, err := s.requireUnlocked(ctx, item.BudgetID); err != nil {
		return nil, err
	}
	if item.Name == "" {
		return nil, ierr.NewError("line item name required").
			WithHint("A line item name is required").
			Mark(ierr.ErrValidation)
	}

	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BUDGET_LINE_ITEM)
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.BudgetLineItemRepo.Create(ctx, item); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create line item").
			Mark(ierr.ErrDatabase)
	}
	return item, nil
}

func (s *budgetService) UpdateLineItem(ctx context.Context, item *budget.LineItem) (*budget.LineItem, error) {
	existing, err := s.BudgetLineItemRepo.Get(ctx, item.ID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Line item not found").
			Mark(ierr.ErrNotFound)
	}
	if _, err := s.requireUnlocked(ctx, existing.BudgetID); err != nil {
		return nil, err
	}

	existing.Category = item.Category
	existing.Name = item.Name
	existing.Amount = item.Amount
	existing.UpdatedAt = time.Now().UTC()

	if err := s.BudgetLineItemRepo.Update(ctx, existing); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to update line item").
			Mark(ierr.ErrDatabase)
	}
	return existing, nil
}

func (s *budgetService) DeleteLineItem(ctx context.Context, id string) error {
	existing, err := s.BudgetLineItemRepo.Get(ctx, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Line item not found").
			Mark(ierr.ErrNotFound)
	}
	if _, err := s.requireUnlocked(ctx, existing.BudgetID); err != nil {
		return err
	}

	if err := s.BudgetLineItemRepo.Delete(ctx, id); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete line item").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// AssessmentTotal sums a budget's operating line items
func (s *budgetService) AssessmentTotal(ctx context.Context, budgetID string) (decimal.Decimal, error) {
	items, err := s.BudgetLineItemRepo.ListByBudget(ctx, budgetID)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to list line items").
			Mark(ierr.ErrDatabase)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total, nil
}

// RequiredApprovals returns the board quorum for budget approval:
// two-thirds of active board members rounded up, floored at one, and
// zero when the board is empty.
func (s *budgetService) RequiredApprovals(ctx context.Context) (int, error) {
	members, err := s.UserRepo.ListByRoles(ctx, []types.Role{types.RoleBoard})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to list board members").
			Mark(ierr.ErrDatabase)
	}

	active := 0
	for _, m := range members {
		if m.IsActive() {
			active++
		}
	}
	return BoardQuorum(active), nil
}

// BoardQuorum computes the approvals required for a board of the given
// size: ceil(2n/3) with a floor of one, zero for an empty board.
func BoardQuorum(boardSize int) int {
	if boardSize <= 0 {
		return 0
	}
	quorum := int(math.Ceil(float64(boardSize) * 2 / 3))
	if quorum < 1 {
		quorum = 1
	}
	return quorum
}

// Approve records the calling board member's approval and locks the
// budget once approvals reach quorum. A member approves at most once.
func (s *budgetService) Approve(ctx context.Context, budgetID string) (*budget.Budget, error) {
	if !types.GetRoleSet(ctx).HasAny(types.RoleBoard) {
		return nil, ierr.NewError("actor may not approve budgets").
			WithHint("Only board members may approve budgets").
			Mark(ierr.ErrPermissionDenied)
	}

	b, err := s.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if b.IsLocked() {
		return b, nil
	}

	memberID := types.GetUserID(ctx)
	if existing, err := s.BudgetApprovalRepo.GetByBudgetAndMember(ctx, b.ID, memberID); err == nil && existing != nil {
		return b, nil
	}

	approval := &budget.Approval{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BUDGET_APPROVAL),
		BudgetID:   b.ID,
		MemberID:   memberID,
		ApprovedAt: time.Now().UTC(),
	}
	if err := s.BudgetApprovalRepo.Create(ctx, approval); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to record approval").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "budget.approved", "budget", b.ID, nil, approval); err != nil {
		return nil, err
	}

	required, err := s.RequiredApprovals(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.BudgetApprovalRepo.CountByBudget(ctx, b.ID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to count approvals").
			Mark(ierr.ErrDatabase)
	}

	if required > 0 && count >= required {
		before := *b
		now := time.Now().UTC()
		b.BudgetStatus = types.BudgetStatusApproved
		b.LockedAt = &now
		b.LockedBy = &memberID
		b.UpdatedAt = now
		b.UpdatedBy = memberID

		if err := s.BudgetRepo.Update(ctx, b); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to lock budget").
				Mark(ierr.ErrDatabase)
		}
		if err := s.audit.Record(ctx, "budget.locked", "budget", b.ID, &before, b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// RevokeApproval withdraws the calling member's approval while the
// budget is still a draft.
func (s *budgetService) RevokeApproval(ctx context.Context, budgetID string) (*budget.Budget, error) {
	b, err := s.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if b.BudgetStatus != types.BudgetStatusDraft {
		return nil, ierr.NewError("budget not in draft").
			WithHint("Approvals may be revoked only while the budget is a draft").
			Mark(ierr.ErrInvalidOperation)
	}

	memberID := types.GetUserID(ctx)
	approval, err := s.BudgetApprovalRepo.GetByBudgetAndMember(ctx, b.ID, memberID)
	if err != nil || approval == nil {
		return nil, ierr.NewError("no approval recorded").
			WithHint("The caller has not approved this budget").
			Mark(ierr.ErrNotFound)
	}

	if err := s.BudgetApprovalRepo.Delete(ctx, approval.ID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to revoke approval").
			Mark(ierr.ErrDatabase)
	}

	if err := s.audit.Record(ctx, "budget.approval_revoked", "budget", b.ID, approval, nil); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *budgetService) AddReservePlanItem(ctx context.Context, item *budget.ReservePlanItem) (*budget.ReservePlanItem, error) {
	if _, err := s.requireUnlocked(ctx, item.BudgetID); err != nil {
		return nil, err
	}
	if item.EstimatedCost.IsNegative() || item.CurrentFunding.IsNegative() {
		return nil, ierr.NewError("negative reserve amounts").
			WithHint("Reserve cost and funding must be non-negative").
			Mark(ierr.ErrValidation)
	}

	if item.ID == "" {
		item.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RESERVE_PLAN_ITEM)
	}
	item.CreatedAt = time.Now().UTC()

	if err := s.ReservePlanItemRepo.Create(ctx, item); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create reserve plan item").
			Mark(ierr.ErrDatabase)
	}
	return item, nil
}

func (s *budgetService) ReserveContribution(ctx context.Context, itemID string) (*budget.ReserveContribution, error) {
	item, err := s.ReservePlanItemRepo.Get(ctx, itemID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Reserve plan item not found").
			Mark(ierr.ErrNotFound)
	}
	b, err := s.Get(ctx, item.BudgetID)
	if err != nil {
		return nil, err
	}
	return ComputeReserveContribution(item, b.FiscalYear), nil
}

// ComputeReserveContribution amortizes a future capital expense into an
// annual contribution. Years remaining never drop below one; a target
// year at or before the budget year is flagged invalid and contributes
// zero rather than failing. Intermediate arithmetic stays unrounded;
// the returned amounts are rounded half-up to two places, this being
// the reporting boundary.
func ComputeReserveContribution(item *budget.ReservePlanItem, budgetYear int) *budget.ReserveContribution {
	yearsRemaining := item.TargetYear - budgetYear
	isValid := yearsRemaining > 0
	if yearsRemaining < 1 {
		yearsRemaining = 1
	}

	growth := decimal.NewFromInt(1).Add(item.InflationRate).Pow(decimal.NewFromInt(int64(yearsRemaining)))
	futureCost := item.EstimatedCost.Mul(growth)

	remainingNeeded := futureCost.Sub(item.CurrentFunding)
	if remainingNeeded.IsNegative() {
		remainingNeeded = decimal.Zero
	}

	annual := decimal.Zero
	if isValid {
		annual = remainingNeeded.Div(decimal.NewFromInt(int64(yearsRemaining)))
	}

	return &budget.ReserveContribution{
		YearsRemaining:     yearsRemaining,
		IsValidTargetYear:  isValid,
		FutureCost:         futureCost.Round(2),
		RemainingNeeded:    remainingNeeded.Round(2),
		AnnualContribution: annual.Round(2),
	}
}
