package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/openhoa/openhoa/internal/domain/budget"
)

// InMemoryBudgetStore is an in-memory implementation of budget.Repository
type InMemoryBudgetStore struct {
	mu      sync.Mutex
	budgets map[string]*budget.Budget
}

// NewInMemoryBudgetStore creates a new instance of InMemoryBudgetStore
func NewInMemoryBudgetStore() *InMemoryBudgetStore {
	return &InMemoryBudgetStore{
		budgets: make(map[string]*budget.Budget),
	}
}

func (r *InMemoryBudgetStore) Create(ctx context.Context, b *budget.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.budgets[b.ID]; exists {
		return errors.New("budget already exists")
	}
	copied := *b
	r.budgets[b.ID] = &copied
	return nil
}

func (r *InMemoryBudgetStore) Get(ctx context.Context, id string) (*budget.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.budgets[id]
	if !exists {
		return nil, errors.New("budget not found")
	}
	copied := *b
	return &copied, nil
}

func (r *InMemoryBudgetStore) Update(ctx context.Context, b *budget.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.budgets[b.ID]; !exists {
		return errors.New("budget not found")
	}
	copied := *b
	r.budgets[b.ID] = &copied
	return nil
}

func (r *InMemoryBudgetStore) List(ctx context.Context) ([]*budget.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*budget.Budget
	for _, b := range r.budgets {
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

// Clear removes all budgets from the store
func (r *InMemoryBudgetStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets = make(map[string]*budget.Budget)
}

// InMemoryBudgetLineItemStore is an in-memory implementation of
// budget.LineItemRepository.
type InMemoryBudgetLineItemStore struct {
	mu    sync.Mutex
	items map[string]*budget.LineItem
}

// NewInMemoryBudgetLineItemStore creates a new instance of InMemoryBudgetLineItemStore
func NewInMemoryBudgetLineItemStore() *InMemoryBudgetLineItemStore {
	return &InMemoryBudgetLineItemStore{
		items: make(map[string]*budget.LineItem),
	}
}

func (r *InMemoryBudgetLineItemStore) Create(ctx context.Context, item *budget.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return errors.New("line item already exists")
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *InMemoryBudgetLineItemStore) Get(ctx context.Context, id string) (*budget.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, errors.New("line item not found")
	}
	copied := *item
	return &copied, nil
}

func (r *InMemoryBudgetLineItemStore) Update(ctx context.Context, item *budget.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return errors.New("line item not found")
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *InMemoryBudgetLineItemStore) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return errors.New("line item not found")
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryBudgetLineItemStore) ListByBudget(ctx context.Context, budgetID string) ([]*budget.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*budget.LineItem
	for _, item := range r.items {
		if item.BudgetID == budgetID {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all line items from the store
func (r *InMemoryBudgetLineItemStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]*budget.LineItem)
}

// InMemoryReservePlanItemStore is an in-memory implementation of
// budget.ReservePlanItemRepository.
type InMemoryReservePlanItemStore struct {
	mu    sync.Mutex
	items map[string]*budget.ReservePlanItem
}

// NewInMemoryReservePlanItemStore creates a new instance of InMemoryReservePlanItemStore
func NewInMemoryReservePlanItemStore() *InMemoryReservePlanItemStore {
	return &InMemoryReservePlanItemStore{
		items: make(map[string]*budget.ReservePlanItem),
	}
}

func (r *InMemoryReservePlanItemStore) Create(ctx context.Context, item *budget.ReservePlanItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return errors.New("reserve plan item already exists")
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *InMemoryReservePlanItemStore) Get(ctx context.Context, id string) (*budget.ReservePlanItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, errors.New("reserve plan item not found")
	}
	copied := *item
	return &copied, nil
}

func (r *InMemoryReservePlanItemStore) ListByBudget(ctx context.Context, budgetID string) ([]*budget.ReservePlanItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*budget.ReservePlanItem
	for _, item := range r.items {
		if item.BudgetID == budgetID {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all reserve plan items from the store
func (r *InMemoryReservePlanItemStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]*budget.ReservePlanItem)
}

// InMemoryBudgetApprovalStore is an in-memory implementation of
// budget.ApprovalRepository enforcing one approval per (budget, member).
type InMemoryBudgetApprovalStore struct {
	mu        sync.Mutex
	approvals map[string]*budget.Approval
}

// NewInMemoryBudgetApprovalStore creates a new instance of InMemoryBudgetApprovalStore
func NewInMemoryBudgetApprovalStore() *InMemoryBudgetApprovalStore {
	return &InMemoryBudgetApprovalStore{
		approvals: make(map[string]*budget.Approval),
	}
}

func approvalKey(budgetID, memberID string) string {
	return budgetID + "/" + memberID
}

func (r *InMemoryBudgetApprovalStore) Create(ctx context.Context, a *budget.Approval) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := approvalKey(a.BudgetID, a.MemberID)
	if _, exists := r.approvals[key]; exists {
		return errors.New("member already approved budget")
	}
	copied := *a
	r.approvals[key] = &copied
	return nil
}

func (r *InMemoryBudgetApprovalStore) GetByBudgetAndMember(ctx context.Context, budgetID, memberID string) (*budget.Approval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.approvals[approvalKey(budgetID, memberID)]
	if !exists {
		return nil, errors.New("approval not found")
	}
	copied := *a
	return &copied, nil
}

func (r *InMemoryBudgetApprovalStore) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, a := range r.approvals {
		if a.ID == id {
			delete(r.approvals, key)
			return nil
		}
	}
	return errors.New("approval not found")
}

func (r *InMemoryBudgetApprovalStore) CountByBudget(ctx context.Context, budgetID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, a := range r.approvals {
		if a.BudgetID == budgetID {
			count++
		}
	}
	return count, nil
}

// Clear removes all approvals from the store
func (r *InMemoryBudgetApprovalStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approvals = make(map[string]*budget.Approval)
}
