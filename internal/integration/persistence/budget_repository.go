package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	"github.com/household-ledger/backend/internal/domain/valueobject"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db    *gorm.DB
	clock adapter.Clock
}

// NewBudgetRepository creates a new budget repository instance.
// The clock decides which day of the current month the burn rate is measured at.
func NewBudgetRepository(db *gorm.DB, clock adapter.Clock) adapter.BudgetRepository {
	return &budgetRepository{
		db:    db,
		clock: clock,
	}
}

// categoryActivityRow is one group of the monthly activity query.
// CategoryID is nil for transactions without a category assignment.
type categoryActivityRow struct {
	CategoryID       *uuid.UUID      `gorm:"column:category_id"`
	Spent            decimal.Decimal `gorm:"column:spent"`
	Earned           decimal.Decimal `gorm:"column:earned"`
	TransactionCount int             `gorm:"column:transaction_count"`
}

// periodBudgetRow is one budget of the month's period.
type periodBudgetRow struct {
	CategoryID      uuid.UUID       `gorm:"column:category_id"`
	Amount          decimal.Decimal `gorm:"column:amount"`
	RolloverEnabled bool            `gorm:"column:rollover_enabled"`
}

// GetCategorySummaryForMonth aggregates a month's activity per category in one grouped query,
// then joins it in memory with the period's budgets and the household's categories.
func (r *budgetRepository) GetCategorySummaryForMonth(ctx context.Context, householdID uuid.UUID, month time.Time) ([]valueobject.CategorySummary, error) {
	start, end := valueobject.MonthBounds(month)

	activity, err := r.monthlyActivity(ctx, householdID, start, end)
	if err != nil {
		return nil, err
	}

	budgets, err := r.periodBudgets(ctx, householdID, start)
	if err != nil {
		return nil, err
	}

	activityByCategory := make(map[uuid.UUID]categoryActivityRow, len(activity))
	var uncategorized *categoryActivityRow
	activeIDs := make([]uuid.UUID, 0, len(activity))
	for i := range activity {
		row := activity[i]
		if row.CategoryID == nil {
			uncategorized = &row
			continue
		}
		activityByCategory[*row.CategoryID] = row
		activeIDs = append(activeIDs, *row.CategoryID)
	}

	// Soft-deleted categories still report the months they had activity in.
	var categoryModels []model.CategoryModel
	query := r.db.WithContext(ctx).Unscoped().Where("household_id = ?", householdID)
	if len(activeIDs) > 0 {
		query = query.Where("deleted_at IS NULL OR id IN ?", activeIDs)
	} else {
		query = query.Where("deleted_at IS NULL")
	}
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	summaries := make([]valueobject.CategorySummary, 0, len(categoryModels)+1)
	for _, cm := range categoryModels {
		row := activityByCategory[cm.ID]
		budget, hasBudget := budgets[cm.ID]

		amount := decimal.Zero
		if hasBudget {
			amount = budget.Amount
		}

		summaries = append(summaries, valueobject.ComputeCategorySummary(
			valueobject.CategoryRefFromEntity(cm.ToEntity()),
			amount,
			row.Spent.Round(2),
			row.Earned.Round(2),
			row.TransactionCount,
			hasBudget && budget.RolloverEnabled,
		))
	}

	if uncategorized != nil && uncategorized.TransactionCount > 0 {
		summaries = append(summaries, valueobject.ComputeCategorySummary(
			valueobject.UncategorizedRef(),
			decimal.Zero,
			uncategorized.Spent.Round(2),
			uncategorized.Earned.Round(2),
			uncategorized.TransactionCount,
			false,
		))
	}

	return summaries, nil
}

func (r *budgetRepository) monthlyActivity(ctx context.Context, householdID uuid.UUID, start, end time.Time) ([]categoryActivityRow, error) {
	var rows []categoryActivityRow

	query := `
		SELECT
			tc.category_id AS category_id,
			COALESCE(SUM(CASE WHEN t.direction = ? THEN t.amount * COALESCE(tc.weight, 1) ELSE 0 END), 0) AS spent,
			COALESCE(SUM(CASE WHEN t.direction = ? THEN t.amount * COALESCE(tc.weight, 1) ELSE 0 END), 0) AS earned,
			COUNT(DISTINCT t.id) AS transaction_count
		FROM transactions t
		LEFT JOIN transaction_categories tc ON tc.transaction_id = t.id
		WHERE t.household_id = ?
			AND t.occurred_at >= ?
			AND t.occurred_at < ?
			AND t.deleted_at IS NULL
		GROUP BY tc.category_id
	`

	err := r.db.WithContext(ctx).
		Raw(query,
			string(entity.TransactionDirectionOutflow),
			string(entity.TransactionDirectionInflow),
			householdID, start, end,
		).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly activity: %w", err)
	}
	return rows, nil
}

func (r *budgetRepository) periodBudgets(ctx context.Context, householdID uuid.UUID, month time.Time) (map[uuid.UUID]periodBudgetRow, error) {
	var rows []periodBudgetRow
	err := r.db.WithContext(ctx).
		Table("budgets AS b").
		Select("b.category_id, b.amount, b.rollover_enabled").
		Joins("JOIN budget_periods p ON p.id = b.period_id").
		Where("p.household_id = ? AND p.month = ?", householdID, month).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load period budgets: %w", err)
	}

	budgets := make(map[uuid.UUID]periodBudgetRow, len(rows))
	for _, row := range rows {
		budgets[row.CategoryID] = row
	}
	return budgets, nil
}

// GetBurnRateForMonth computes the burn rate from total outflow and the month's expense budgets.
func (r *budgetRepository) GetBurnRateForMonth(ctx context.Context, householdID uuid.UUID, month time.Time) (*valueobject.BurnRate, error) {
	start, end := valueobject.MonthBounds(month)

	var spend struct {
		Spent            decimal.Decimal `gorm:"column:spent"`
		TransactionCount int             `gorm:"column:transaction_count"`
	}
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE 0 END), 0) AS spent, COUNT(*) AS transaction_count",
			string(entity.TransactionDirectionOutflow)).
		Where("household_id = ? AND occurred_at >= ? AND occurred_at < ?", householdID, start, end).
		Where("deleted_at IS NULL").
		Scan(&spend).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly spend: %w", err)
	}

	var period model.BudgetPeriodModel
	hasPeriod := true
	err = r.db.WithContext(ctx).
		Where("household_id = ? AND month = ?", householdID, start).
		First(&period).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find budget period: %w", err)
		}
		hasPeriod = false
	}

	if !hasPeriod && spend.TransactionCount == 0 {
		return nil, nil
	}

	total := decimal.Zero
	if hasPeriod {
		var sum struct {
			Total decimal.Decimal `gorm:"column:total"`
		}
		// Income targets are not spending money.
		err = r.db.WithContext(ctx).
			Table("budgets").
			Select("COALESCE(SUM(budgets.amount), 0) AS total").
			Joins("JOIN categories ON categories.id = budgets.category_id").
			Where("budgets.period_id = ? AND categories.kind = ?", period.ID, string(entity.CategoryKindExpense)).
			Scan(&sum).Error
		if err != nil {
			return nil, fmt.Errorf("failed to sum period budgets: %w", err)
		}
		total = sum.Total
	}

	burnRate := valueobject.ComputeBurnRate(
		spend.Spent.Round(2),
		total.Round(2),
		valueobject.DayOfMonthFor(start, r.clock.Now()),
		valueobject.DaysInMonth(start),
	)
	return &burnRate, nil
}

// UpsertBudgetPeriod inserts the period if missing and returns the stored row.
func (r *budgetRepository) UpsertBudgetPeriod(ctx context.Context, householdID uuid.UUID, month time.Time) (*entity.BudgetPeriod, error) {
	candidate := model.BudgetPeriodModel{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Month:       month,
		CreatedAt:   time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "household_id"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("failed to insert budget period: %w", err)
	}

	var stored model.BudgetPeriodModel
	err = r.db.WithContext(ctx).
		Where("household_id = ? AND month = ?", householdID, month).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load budget period: %w", err)
	}
	return stored.ToEntity(), nil
}

// FindBudgetsByPeriod returns every budget row of a period.
func (r *budgetRepository) FindBudgetsByPeriod(ctx context.Context, periodID uuid.UUID) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	if err := r.db.WithContext(ctx).Where("period_id = ?", periodID).Find(&budgetModels).Error; err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// UpsertBudgets writes budgets keyed by (period_id, category_id); the last write wins.
func (r *budgetRepository) UpsertBudgets(ctx context.Context, budgets []*entity.Budget) error {
	if len(budgets) == 0 {
		return nil
	}

	budgetModels := make([]*model.BudgetModel, len(budgets))
	for i, b := range budgets {
		budgetModels[i] = model.BudgetFromEntity(b)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "period_id"}, {Name: "category_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "rollover_enabled", "updated_at"}),
		}).
		Create(&budgetModels).Error
}
