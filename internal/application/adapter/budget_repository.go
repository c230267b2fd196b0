package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

// BudgetRepository is the store contract of the budget aggregator.
// Every month argument must already be normalized with valueobject.NormalizeMonth.
type BudgetRepository interface {
	// GetCategorySummaryForMonth returns one pre-aggregated row per household category,
	// plus an uncategorized row when the month has activity without a category.
	GetCategorySummaryForMonth(ctx context.Context, householdID uuid.UUID, month time.Time) ([]valueobject.CategorySummary, error)

	// GetBurnRateForMonth returns nil with no error when the month has neither a budget
	// period nor any transaction.
	GetBurnRateForMonth(ctx context.Context, householdID uuid.UUID, month time.Time) (*valueobject.BurnRate, error)

	// UpsertBudgetPeriod returns the period keyed by (household_id, month), creating it if needed.
	UpsertBudgetPeriod(ctx context.Context, householdID uuid.UUID, month time.Time) (*entity.BudgetPeriod, error)

	// FindBudgetsByPeriod returns every budget row of a period.
	FindBudgetsByPeriod(ctx context.Context, periodID uuid.UUID) ([]*entity.Budget, error)

	// UpsertBudgets writes budget rows keyed by (period_id, category_id); last write wins.
	UpsertBudgets(ctx context.Context, budgets []*entity.Budget) error
}
