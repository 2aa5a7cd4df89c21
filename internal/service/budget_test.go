package service

import (
	"encoding/json"
	"testing"

	"github.com/openhoa/openhoa/internal/domain/budget"
	"github.com/openhoa/openhoa/internal/domain/user"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/testutil"
	"github.com/openhoa/openhoa/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BudgetService
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBudgetService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *BudgetServiceSuite) seedBoard(ids ...string) {
	for _, id := range ids {
		s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), &user.User{
			ID:    id,
			Email: id + "@example.com",
			Name:  "Board Member " + id,
			Roles: []types.Role{types.RoleBoard},
			BaseModel: types.BaseModel{
				Status: types.StatusActive,
			},
		}))
	}
}

func (s *BudgetServiceSuite) seedBudget(id string, year int) *budget.Budget {
	b := &budget.Budget{
		ID:           id,
		FiscalYear:   year,
		Title:        "Operating Budget",
		BudgetStatus: types.BudgetStatusDraft,
		BaseModel: types.BaseModel{
			Status: types.StatusActive,
		},
	}
	s.NoError(s.GetStores().BudgetRepo.Create(s.GetContext(), b))
	return b
}

func (s *BudgetServiceSuite) TestBoardQuorum() {
	cases := map[int]int{
		0: 0,
		1: 1,
		2: 2,
		3: 2,
		4: 3,
		5: 4,
		6: 4,
		9: 6,
	}
	for size, want := range cases {
		s.Equal(want, BoardQuorum(size), "board size %d", size)
	}
}

func (s *BudgetServiceSuite) TestRequiredApprovalsCountsActiveBoard() {
	s.seedBoard("board_1", "board_2", "board_3")

	// An inactive member does not count toward the quorum base
	inactive := &user.User{
		ID:    "board_4",
		Email: "board_4@example.com",
		Name:  "Former Member",
		Roles: []types.Role{types.RoleBoard},
		BaseModel: types.BaseModel{
			Status: types.StatusArchived,
		},
	}
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), inactive))

	required, err := s.service.RequiredApprovals(s.GetContext())
	s.NoError(err)
	s.Equal(2, required)
}

func (s *BudgetServiceSuite) TestApproveRequiresBoardRole() {
	s.seedBoard("board_1")
	s.seedBudget("budget_1", 2026)

	ctx := testutil.ContextAs("user_mgr", types.RoleManager)
	_, err := s.service.Approve(ctx, "budget_1")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *BudgetServiceSuite) TestApprovalQuorumLocksBudget() {
	s.seedBoard("board_1", "board_2", "board_3")
	s.seedBudget("budget_1", 2026)

	got, err := s.service.Approve(testutil.ContextAs("board_1", types.RoleBoard), "budget_1")
	s.NoError(err)
	s.Equal(types.BudgetStatusDraft, got.BudgetStatus)

	// Second approval reaches ceil(2*3/3) = 2 and locks
	got, err = s.service.Approve(testutil.ContextAs("board_2", types.RoleBoard), "budget_1")
	s.NoError(err)
	s.Equal(types.BudgetStatusApproved, got.BudgetStatus)
	s.NotNil(got.LockedAt)
	s.NotNil(got.LockedBy)
	s.Equal("board_2", *got.LockedBy)
}

func (s *BudgetServiceSuite) TestDuplicateApprovalIsNoOp() {
	s.seedBoard("board_1", "board_2", "board_3")
	s.seedBudget("budget_1", 2026)

	ctx := testutil.ContextAs("board_1", types.RoleBoard)
	_, err := s.service.Approve(ctx, "budget_1")
	s.NoError(err)
	_, err = s.service.Approve(ctx, "budget_1")
	s.NoError(err)

	count, err := s.GetStores().BudgetApprovalRepo.CountByBudget(s.GetContext(), "budget_1")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *BudgetServiceSuite) TestLockedBudgetRejectsLineItemEdits() {
	s.seedBoard("board_1")
	s.seedBudget("budget_1", 2026)

	item, err := s.service.AddLineItem(s.GetContext(), &budget.LineItem{
		BudgetID: "budget_1",
		Category: "Grounds",
		Name:     "Landscaping contract",
		Amount:   decimal.NewFromInt(24000),
	})
	s.NoError(err)

	// Quorum for a single-member board is one
	got, err := s.service.Approve(testutil.ContextAs("board_1", types.RoleBoard), "budget_1")
	s.NoError(err)
	s.True(got.IsLocked())

	_, err = s.service.AddLineItem(s.GetContext(), &budget.LineItem{
		BudgetID: "budget_1",
		Category: "Grounds",
		Name:     "Tree trimming",
		Amount:   decimal.NewFromInt(5000),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	item.Amount = decimal.NewFromInt(25000)
	_, err = s.service.UpdateLineItem(s.GetContext(), item)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	err = s.service.DeleteLineItem(s.GetContext(), item.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BudgetServiceSuite) TestRevokeApprovalOnlyWhileDraft() {
	s.seedBoard("board_1", "board_2", "board_3")
	s.seedBudget("budget_1", 2026)

	ctx := testutil.ContextAs("board_1", types.RoleBoard)
	_, err := s.service.Approve(ctx, "budget_1")
	s.NoError(err)

	_, err = s.service.RevokeApproval(ctx, "budget_1")
	s.NoError(err)
	count, err := s.GetStores().BudgetApprovalRepo.CountByBudget(s.GetContext(), "budget_1")
	s.NoError(err)
	s.Equal(0, count)

	// Lock the budget, then revocation is closed
	_, err = s.service.Approve(testutil.ContextAs("board_1", types.RoleBoard), "budget_1")
	s.NoError(err)
	_, err = s.service.Approve(testutil.ContextAs("board_2", types.RoleBoard), "budget_1")
	s.NoError(err)

	_, err = s.service.RevokeApproval(testutil.ContextAs("board_1", types.RoleBoard), "budget_1")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *BudgetServiceSuite) TestAssessmentTotal() {
	s.seedBudget("budget_1", 2026)

	for name, amount := range map[string]int64{
		"Landscaping contract": 24000,
		"Pool maintenance":     9600,
		"Insurance":            18250,
	} {
		_, err := s.service.AddLineItem(s.GetContext(), &budget.LineItem{
			BudgetID: "budget_1",
			Category: "Operating",
			Name:     name,
			Amount:   decimal.NewFromInt(amount),
		})
		s.NoError(err)
	}

	total, err := s.service.AssessmentTotal(s.GetContext(), "budget_1")
	s.NoError(err)
	s.True(total.Equal(decimal.NewFromInt(51850)))
}

func (s *BudgetServiceSuite) TestReserveContributionAmortization() {
	item := &budget.ReservePlanItem{
		Name:           "Roof replacement",
		TargetYear:     2030,
		EstimatedCost:  decimal.NewFromInt(10000),
		InflationRate:  decimal.RequireFromString("0.02"),
		CurrentFunding: decimal.NewFromInt(1000),
	}

	contribution := ComputeReserveContribution(item, 2025)
	s.True(contribution.IsValidTargetYear)
	s.Equal(5, contribution.YearsRemaining)
	// 10000 * 1.02^5 = 11040.808032, minus 1000 funding, over 5 years;
	// amounts leave the calculator already rounded to two places
	s.Equal("11040.81", contribution.FutureCost.String())
	s.Equal("10040.81", contribution.RemainingNeeded.String())
	s.Equal("2008.16", contribution.AnnualContribution.String())

	serialized, err := json.Marshal(contribution)
	s.NoError(err)
	s.Contains(string(serialized), `"annual_contribution":"2008.16"`)
	s.Contains(string(serialized), `"future_cost":"11040.81"`)
}

func (s *BudgetServiceSuite) TestReserveContributionInvalidTargetYear() {
	item := &budget.ReservePlanItem{
		Name:           "Repaving",
		TargetYear:     2024,
		EstimatedCost:  decimal.NewFromInt(50000),
		InflationRate:  decimal.RequireFromString("0.03"),
		CurrentFunding: decimal.Zero,
	}

	contribution := ComputeReserveContribution(item, 2026)
	s.False(contribution.IsValidTargetYear)
	s.Equal(1, contribution.YearsRemaining)
	s.True(contribution.AnnualContribution.IsZero())
}

func (s *BudgetServiceSuite) TestReserveContributionFullyFunded() {
	item := &budget.ReservePlanItem{
		Name:           "Fence",
		TargetYear:     2027,
		EstimatedCost:  decimal.NewFromInt(1000),
		InflationRate:  decimal.Zero,
		CurrentFunding: decimal.NewFromInt(5000),
	}

	contribution := ComputeReserveContribution(item, 2026)
	s.True(contribution.IsValidTargetYear)
	s.True(contribution.RemainingNeeded.IsZero())
	s.True(contribution.AnnualContribution.IsZero())
}
