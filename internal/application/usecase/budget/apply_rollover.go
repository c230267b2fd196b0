package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

// ApplyRolloverInput represents the input for carrying unused budget forward.
type ApplyRolloverInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	FromMonth   string
	ToMonth     string
}

// ApplyRolloverOutput represents the output of a rollover.
type ApplyRolloverOutput struct {
	FromMonth           time.Time
	ToMonth             time.Time
	CategoriesProcessed int
	Adjustments         []valueobject.RolloverAdjustment
}

// ApplyRolloverUseCase adds each eligible category's unused budget to the next month.
type ApplyRolloverUseCase struct {
	budgetRepo adapter.BudgetRepository
	guard      adapter.RolloverGuard
	authorizer *household.Authorizer
}

// NewApplyRolloverUseCase creates a new ApplyRolloverUseCase instance.
func NewApplyRolloverUseCase(
	budgetRepo adapter.BudgetRepository,
	guard adapter.RolloverGuard,
	authorizer *household.Authorizer,
) *ApplyRolloverUseCase {
	return &ApplyRolloverUseCase{
		budgetRepo: budgetRepo,
		guard:      guard,
		authorizer: authorizer,
	}
}

// Execute reads the source month's summaries before writing any target budget.
// Running it twice for the same pair adds the surplus twice unless the guard refuses.
func (uc *ApplyRolloverUseCase) Execute(ctx context.Context, input ApplyRolloverInput) (*ApplyRolloverOutput, error) {
	fromMonth, err := valueobject.NormalizeMonth(input.FromMonth)
	if err != nil {
		return nil, err
	}
	toMonth, err := valueobject.NormalizeMonth(input.ToMonth)
	if err != nil {
		return nil, err
	}
	if !fromMonth.Before(toMonth) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidRolloverRange,
			"from_month must be before to_month",
			domainerror.ErrInvalidRolloverRange,
		)
	}

	if _, err := uc.authorizer.RequireWriter(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	acquired, err := uc.guard.Acquire(ctx, input.HouseholdID, fromMonth, toMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire rollover guard: %w", err)
	}
	if !acquired {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeRolloverAlreadyApplied,
			fmt.Sprintf("rollover %s was already applied", monthPair(fromMonth, toMonth)),
			domainerror.ErrRolloverAlreadyApplied,
		)
	}

	output, err := uc.rollover(ctx, input.HouseholdID, fromMonth, toMonth)
	if err != nil {
		if releaseErr := uc.guard.Release(ctx, input.HouseholdID, fromMonth, toMonth); releaseErr != nil {
			slog.Error("Failed to release rollover guard",
				"household_id", input.HouseholdID,
				"months", monthPair(fromMonth, toMonth),
				"error", releaseErr,
			)
		}
		return nil, err
	}

	slog.Info("Rollover applied",
		"household_id", input.HouseholdID,
		"months", monthPair(fromMonth, toMonth),
		"adjustments", len(output.Adjustments),
	)

	return output, nil
}

func (uc *ApplyRolloverUseCase) rollover(ctx context.Context, householdID uuid.UUID, fromMonth, toMonth time.Time) (*ApplyRolloverOutput, error) {
	previous, err := uc.budgetRepo.GetCategorySummaryForMonth(ctx, householdID, fromMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to get source month summary: %w", err)
	}

	period, err := uc.budgetRepo.UpsertBudgetPeriod(ctx, householdID, toMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert target budget period: %w", err)
	}

	existing, err := uc.budgetRepo.FindBudgetsByPeriod(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target budgets: %w", err)
	}
	targetAmounts := make(map[uuid.UUID]decimal.Decimal, len(existing))
	for _, b := range existing {
		targetAmounts[b.CategoryID] = b.Amount
	}

	adjustments := valueobject.ApplyRollover(previous, targetAmounts)

	if len(adjustments) > 0 {
		budgets := make([]*entity.Budget, 0, len(adjustments))
		for _, a := range adjustments {
			budgets = append(budgets, entity.NewBudget(period.ID, a.CategoryID, a.NewAmount.Round(2), true))
		}
		if err := uc.budgetRepo.UpsertBudgets(ctx, budgets); err != nil {
			return nil, fmt.Errorf("failed to write rolled over budgets: %w", err)
		}
	}

	return &ApplyRolloverOutput{
		FromMonth:           fromMonth,
		ToMonth:             toMonth,
		CategoriesProcessed: len(previous),
		Adjustments:         adjustments,
	}, nil
}

func monthPair(from, to time.Time) string {
	return valueobject.FormatMonth(from) + " -> " + valueobject.FormatMonth(to)
}
