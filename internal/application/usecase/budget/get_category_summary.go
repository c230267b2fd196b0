package budget

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

// GetCategorySummaryInput represents the input for the category summary report.
type GetCategorySummaryInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	Month       string
	TopLimit    int // Optional, defaults to valueobject.DefaultTopCategoriesLimit
}

// GetCategorySummaryOutput holds the month's summaries ordered by spend, with totals.
type GetCategorySummaryOutput struct {
	HouseholdID uuid.UUID
	Month       time.Time
	Summaries   []valueobject.CategorySummary
	Totals      valueobject.SummaryTotals
	TopExpenses []valueobject.CategorySummary
	TopIncome   []valueobject.CategorySummary
}

// GetCategorySummaryUseCase builds the category summary report for a month.
type GetCategorySummaryUseCase struct {
	budgetRepo adapter.BudgetRepository
	authorizer *household.Authorizer
}

// NewGetCategorySummaryUseCase creates a new GetCategorySummaryUseCase instance.
func NewGetCategorySummaryUseCase(budgetRepo adapter.BudgetRepository, authorizer *household.Authorizer) *GetCategorySummaryUseCase {
	return &GetCategorySummaryUseCase{
		budgetRepo: budgetRepo,
		authorizer: authorizer,
	}
}

// Execute performs the summary computation.
func (uc *GetCategorySummaryUseCase) Execute(ctx context.Context, input GetCategorySummaryInput) (*GetCategorySummaryOutput, error) {
	month, err := valueobject.NormalizeMonth(input.Month)
	if err != nil {
		return nil, err
	}

	if _, err := uc.authorizer.RequireMember(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	summaries, err := uc.budgetRepo.GetCategorySummaryForMonth(ctx, input.HouseholdID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to get category summary: %w", err)
	}
	if summaries == nil {
		summaries = []valueobject.CategorySummary{}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Spent.GreaterThan(summaries[j].Spent)
	})

	return &GetCategorySummaryOutput{
		HouseholdID: input.HouseholdID,
		Month:       month,
		Summaries:   summaries,
		Totals:      valueobject.SummarizeTotals(summaries),
		TopExpenses: valueobject.TopCategories(summaries, entity.CategoryKindExpense, input.TopLimit),
		TopIncome:   valueobject.TopCategories(summaries, entity.CategoryKindIncome, input.TopLimit),
	}, nil
}
