// Package budget contains the monthly budget use cases built on the budget aggregator.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

// GetMonthlyBudgetInput represents the input for the monthly budget view.
type GetMonthlyBudgetInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	Month       string // YYYY-MM, YYYY-MM-DD or RFC3339
}

// GetMonthlyBudgetOutput is everything the budget page needs for one month.
type GetMonthlyBudgetOutput struct {
	HouseholdID   uuid.UUID
	Month         time.Time
	Categories    []valueobject.CategorySummary
	BurnRate      *valueobject.BurnRate // nil when the month has no data
	AllCategories []*entity.Category
}

// GetMonthlyBudgetUseCase loads summaries, burn rate and categories for a month.
type GetMonthlyBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	authorizer   *household.Authorizer
}

// NewGetMonthlyBudgetUseCase creates a new GetMonthlyBudgetUseCase instance.
func NewGetMonthlyBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	authorizer *household.Authorizer,
) *GetMonthlyBudgetUseCase {
	return &GetMonthlyBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		authorizer:   authorizer,
	}
}

// Execute fetches the three reads concurrently. They are independent, so the first
// failure cancels the others.
func (uc *GetMonthlyBudgetUseCase) Execute(ctx context.Context, input GetMonthlyBudgetInput) (*GetMonthlyBudgetOutput, error) {
	month, err := valueobject.NormalizeMonth(input.Month)
	if err != nil {
		return nil, err
	}

	if _, err := uc.authorizer.RequireMember(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	var (
		summaries  []valueobject.CategorySummary
		burnRate   *valueobject.BurnRate
		categories []*entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.budgetRepo.GetCategorySummaryForMonth(gctx, input.HouseholdID, month)
		if err != nil {
			return fmt.Errorf("failed to get category summary: %w", err)
		}
		summaries = s
		return nil
	})
	g.Go(func() error {
		b, err := uc.budgetRepo.GetBurnRateForMonth(gctx, input.HouseholdID, month)
		if err != nil {
			return fmt.Errorf("failed to get burn rate: %w", err)
		}
		burnRate = b
		return nil
	})
	g.Go(func() error {
		c, err := uc.categoryRepo.FindByHousehold(gctx, input.HouseholdID)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		categories = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if summaries == nil {
		summaries = []valueobject.CategorySummary{}
	}
	if categories == nil {
		categories = []*entity.Category{}
	}

	return &GetMonthlyBudgetOutput{
		HouseholdID:   input.HouseholdID,
		Month:         month,
		Categories:    summaries,
		BurnRate:      burnRate,
		AllCategories: categories,
	}, nil
}
