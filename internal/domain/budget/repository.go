package budget

import "context"

// Repository defines the interface for budget persistence operations
type Repository interface {
	// Create creates a new budget
	Create(ctx context.Context, budget *Budget) error

	// Get retrieves a budget by ID
	Get(ctx context.Context, id string) (*Budget, error)

	// Update updates an existing budget
	Update(ctx context.Context, budget *Budget) error

	// List retrieves all budgets
	List(ctx context.Context) ([]*Budget, error)
}

// LineItemRepository persists operating line items
type LineItemRepository interface {
	// Create creates a new line item
	Create(ctx context.Context, item *LineItem) error

	// Get retrieves a line item by ID
	Get(ctx context.Context, id string) (*LineItem, error)

	// Update updates an existing line item
	Update(ctx context.Context, item *LineItem) error

	// Delete removes a line item
	Delete(ctx context.Context, id string) error

	// ListByBudget retrieves line items for a budget
	ListByBudget(ctx context.Context, budgetID string) ([]*LineItem, error)
}

// ReservePlanItemRepository persists reserve-plan items
type ReservePlanItemRepository interface {
	// Create creates a new reserve plan item
	Create(ctx context.Context, item *ReservePlanItem) error

	// Get retrieves a reserve plan item by ID
	Get(ctx context.Context, id string) (*ReservePlanItem, error)

	// ListByBudget retrieves reserve plan items for a budget
	ListByBudget(ctx context.Context, budgetID string) ([]*ReservePlanItem, error)
}

// ApprovalRepository persists board approvals, unique per (budget, member)
type ApprovalRepository interface {
	// Create records a member's approval; a duplicate must fail at the
	// data layer
	Create(ctx context.Context, approval *Approval) error

	// GetByBudgetAndMember retrieves a member's approval, if recorded
	GetByBudgetAndMember(ctx context.Context, budgetID, memberID string) (*Approval, error)

	// Delete revokes an approval
	Delete(ctx context.Context, id string) error

	// CountByBudget counts recorded approvals for a budget
	CountByBudget(ctx context.Context, budgetID string) (int, error)
}
