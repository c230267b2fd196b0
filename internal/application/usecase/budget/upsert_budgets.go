package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

// BudgetItemInput is one category budget in an upsert request.
type BudgetItemInput struct {
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	RolloverEnabled bool
}

// UpsertBudgetsInput represents the input for writing a month's budgets.
type UpsertBudgetsInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	Month       string
	Budgets     []BudgetItemInput
}

// UpsertBudgetsOutput represents the output of a budget upsert.
type UpsertBudgetsOutput struct {
	Period  *entity.BudgetPeriod
	Budgets []*entity.Budget
}

// UpsertBudgetsUseCase creates or replaces category budgets for a month.
type UpsertBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	authorizer   *household.Authorizer
}

// NewUpsertBudgetsUseCase creates a new UpsertBudgetsUseCase instance.
func NewUpsertBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	authorizer *household.Authorizer,
) *UpsertBudgetsUseCase {
	return &UpsertBudgetsUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		authorizer:   authorizer,
	}
}

// Execute validates the request, lazily creates the period and writes the budgets.
// A category listed twice keeps its last entry.
func (uc *UpsertBudgetsUseCase) Execute(ctx context.Context, input UpsertBudgetsInput) (*UpsertBudgetsOutput, error) {
	month, err := valueobject.NormalizeMonth(input.Month)
	if err != nil {
		return nil, err
	}

	if len(input.Budgets) == 0 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeEmptyBudgetList,
			"budgets list cannot be empty",
			domainerror.ErrEmptyBudgetList,
		)
	}

	if _, err := uc.authorizer.RequireWriter(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	items := make(map[uuid.UUID]BudgetItemInput, len(input.Budgets))
	order := make([]uuid.UUID, 0, len(input.Budgets))
	for _, b := range input.Budgets {
		if b.Amount.IsNegative() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeNegativeBudgetAmount,
				fmt.Sprintf("budget amount for category %s must not be negative", b.CategoryID),
				domainerror.ErrNegativeBudgetAmount,
			)
		}
		if _, ok := items[b.CategoryID]; !ok {
			order = append(order, b.CategoryID)
		}
		items[b.CategoryID] = b
	}

	found, err := uc.categoryRepo.CountInHousehold(ctx, input.HouseholdID, order)
	if err != nil {
		return nil, fmt.Errorf("failed to verify categories: %w", err)
	}
	if found != len(order) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotInHouse,
			"one or more categories do not belong to household",
			domainerror.ErrBudgetCategoryNotInHousehold,
		)
	}

	period, err := uc.budgetRepo.UpsertBudgetPeriod(ctx, input.HouseholdID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget period: %w", err)
	}

	budgets := make([]*entity.Budget, 0, len(order))
	for _, id := range order {
		item := items[id]
		budgets = append(budgets, entity.NewBudget(period.ID, id, item.Amount.Round(2), item.RolloverEnabled))
	}

	if err := uc.budgetRepo.UpsertBudgets(ctx, budgets); err != nil {
		return nil, fmt.Errorf("failed to upsert budgets: %w", err)
	}

	return &UpsertBudgetsOutput{
		Period:  period,
		Budgets: budgets,
	}, nil
}
