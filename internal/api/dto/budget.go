package dto

import (
	"github.com/openhoa/openhoa/internal/domain/budget"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest creates a fiscal-year budget in DRAFT
type CreateBudgetRequest struct {
	FiscalYear int    `json:"fiscal_year" binding:"required"`
	Title      string `json:"title,omitempty"`
}

func (r *CreateBudgetRequest) ToBudget() *budget.Budget {
	return &budget.Budget{
		FiscalYear: r.FiscalYear,
		Title:      r.Title,
	}
}

// LineItemRequest creates or updates an operating line item
type LineItemRequest struct {
	Category string          `json:"category" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *LineItemRequest) ToLineItem(budgetID string) *budget.LineItem {
	return &budget.LineItem{
		BudgetID: budgetID,
		Category: r.Category,
		Name:     r.Name,
		Amount:   r.Amount,
	}
}

// ReservePlanItemRequest adds a future capital expense to the reserve plan
type ReservePlanItemRequest struct {
	Name           string          `json:"name" binding:"required"`
	TargetYear     int             `json:"target_year" binding:"required"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	InflationRate  decimal.Decimal `json:"inflation_rate"`
	CurrentFunding decimal.Decimal `json:"current_funding"`
}

func (r *ReservePlanItemRequest) ToReservePlanItem(budgetID string) *budget.ReservePlanItem {
	return &budget.ReservePlanItem{
		BudgetID:       budgetID,
		Name:           r.Name,
		TargetYear:     r.TargetYear,
		EstimatedCost:  r.EstimatedCost,
		InflationRate:  r.InflationRate,
		CurrentFunding: r.CurrentFunding,
	}
}
