package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/openhoa/openhoa/internal/domain/budget"
)

type budgetRepository struct {
	db *sqlx.DB
}

// NewBudgetRepository creates a postgres-backed budget repository
func NewBudgetRepository(db *sqlx.DB) budget.Repository {
	return &budgetRepository{db: db}
}

const budgetColumns = `id, fiscal_year, title, budget_status, locked_at, locked_by,
	status, created_at, updated_at, created_by, updated_by`

func (r *budgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES (:id, :fiscal_year, :title, :budget_status, :locked_at, :locked_by,
			:status, :created_at, :updated_at, :created_by, :updated_by)`,
		b,
	)
	return err
}

func (r *budgetRepository) Get(ctx context.Context, id string) (*budget.Budget, error) {
	var b budget.Budget
	if err := r.db.GetContext(ctx, &b, `
		SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *budgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE budgets
		SET fiscal_year = :fiscal_year, title = :title,
		    budget_status = :budget_status, locked_at = :locked_at,
		    locked_by = :locked_by, status = :status,
		    updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`,
		b,
	)
	return err
}

func (r *budgetRepository) List(ctx context.Context) ([]*budget.Budget, error) {
	var budgets []*budget.Budget
	if err := r.db.SelectContext(ctx, &budgets, `
		SELECT `+budgetColumns+` FROM budgets
		ORDER BY fiscal_year DESC`); err != nil {
		return nil, err
	}
	return budgets, nil
}

type lineItemRepository struct {
	db *sqlx.DB
}

// NewLineItemRepository creates a postgres-backed line item repository
func NewLineItemRepository(db *sqlx.DB) budget.LineItemRepository {
	return &lineItemRepository{db: db}
}

const lineItemColumns = `id, budget_id, category, name, amount, created_at, updated_at`

func (r *lineItemRepository) Create(ctx context.Context, item *budget.LineItem) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO budget_line_items (`+lineItemColumns+`)
		VALUES (:id, :budget_id, :category, :name, :amount, :created_at, :updated_at)`,
		item,
	)
	return err
}

func (r *lineItemRepository) Get(ctx context.Context, id string) (*budget.LineItem, error) {
	var item budget.LineItem
	if err := r.db.GetContext(ctx, &item, `
		SELECT `+lineItemColumns+` FROM budget_line_items WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *lineItemRepository) Update(ctx context.Context, item *budget.LineItem) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE budget_line_items
		SET category = :category, name = :name, amount = :amount,
		    updated_at = :updated_at
		WHERE id = :id`,
		item,
	)
	return err
}

func (r *lineItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM budget_line_items WHERE id = $1`, id)
	return err
}

func (r *lineItemRepository) ListByBudget(ctx context.Context, budgetID string) ([]*budget.LineItem, error) {
	var items []*budget.LineItem
	if err := r.db.SelectContext(ctx, &items, `
		SELECT `+lineItemColumns+` FROM budget_line_items
		WHERE budget_id = $1
		ORDER BY category, name`, budgetID); err != nil {
		return nil, err
	}
	return items, nil
}

type reservePlanItemRepository struct {
	db *sqlx.DB
}

// NewReservePlanItemRepository creates a postgres-backed reserve plan repository
func NewReservePlanItemRepository(db *sqlx.DB) budget.ReservePlanItemRepository {
	return &reservePlanItemRepository{db: db}
}

const reservePlanColumns = `id, budget_id, name, target_year, estimated_cost,
	inflation_rate, current_funding, created_at`

func (r *reservePlanItemRepository) Create(ctx context.Context, item *budget.ReservePlanItem) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO budget_reserve_plan_items (`+reservePlanColumns+`)
		VALUES (:id, :budget_id, :name, :target_year, :estimated_cost,
			:inflation_rate, :current_funding, :created_at)`,
		item,
	)
	return err
}

func (r *reservePlanItemRepository) Get(ctx context.Context, id string) (*budget.ReservePlanItem, error) {
	var item budget.ReservePlanItem
	if err := r.db.GetContext(ctx, &item, `
		SELECT `+reservePlanColumns+` FROM budget_reserve_plan_items WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *reservePlanItemRepository) ListByBudget(ctx context.Context, budgetID string) ([]*budget.ReservePlanItem, error) {
	var items []*budget.ReservePlanItem
	if err := r.db.SelectContext(ctx, &items, `
		SELECT `+reservePlanColumns+` FROM budget_reserve_plan_items
		WHERE budget_id = $1
		ORDER BY target_year, name`, budgetID); err != nil {
		return nil, err
	}
	return items, nil
}

type approvalRepository struct {
	db *sqlx.DB
}

// NewApprovalRepository creates a postgres-backed approval repository.
// The unique index on (budget_id, member_id) rejects duplicate
// approvals at the data layer.
func NewApprovalRepository(db *sqlx.DB) budget.ApprovalRepository {
	return &approvalRepository{db: db}
}

const approvalColumns = `id, budget_id, member_id, approved_at`

func (r *approvalRepository) Create(ctx context.Context, a *budget.Approval) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO budget_approvals (`+approvalColumns+`)
		VALUES (:id, :budget_id, :member_id, :approved_at)`,
		a,
	)
	return err
}

func (r *approvalRepository) GetByBudgetAndMember(ctx context.Context, budgetID, memberID string) (*budget.Approval, error) {
	var a budget.Approval
	if err := r.db.GetContext(ctx, &a, `
		SELECT `+approvalColumns+` FROM budget_approvals
		WHERE budget_id = $1 AND member_id = $2`, budgetID, memberID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *approvalRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM budget_approvals WHERE id = $1`, id)
	return err
}

func (r *approvalRepository) CountByBudget(ctx context.Context, budgetID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM budget_approvals WHERE budget_id = $1`, budgetID); err != nil {
		return 0, err
	}
	return count, nil
}
