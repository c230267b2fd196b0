package valueobject

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// DefaultTopCategoriesLimit is used when TopCategories is called without a limit.
const DefaultTopCategoriesLimit = 5

// Uncategorized row constants.
const (
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#9CA3AF"
	UncategorizedIcon  = "help-circle"
)

var hundred = decimal.NewFromInt(100)

// CategoryRef identifies the category a summary row belongs to.
// ID is nil for the uncategorized row.
type CategoryRef struct {
	ID    *uuid.UUID
	Name  string
	Kind  entity.CategoryKind
	Icon  string
	Color string
}

// CategoryRefFromEntity builds a CategoryRef from a domain category.
func CategoryRefFromEntity(c *entity.Category) CategoryRef {
	id := c.ID
	return CategoryRef{
		ID:    &id,
		Name:  c.Name,
		Kind:  c.Kind,
		Icon:  c.Icon,
		Color: c.Color,
	}
}

// UncategorizedRef is the reference used for activity without a category assignment.
func UncategorizedRef() CategoryRef {
	return CategoryRef{
		Name:  UncategorizedName,
		Kind:  entity.CategoryKindExpense,
		Icon:  UncategorizedIcon,
		Color: UncategorizedColor,
	}
}

// CategorySummary is the derived monthly view of one category.
type CategorySummary struct {
	Category         CategoryRef
	Budget           decimal.Decimal
	Spent            decimal.Decimal
	Earned           decimal.Decimal
	Remaining        decimal.Decimal // negative when over budget
	BudgetPercentage float64
	TransactionCount int
	RolloverEnabled  bool
}

// ComputeCategorySummary turns raw monthly activity and a budget amount into a summary row.
// budget is zero when no budget row exists. The percentage is 0 whenever budget is not
// positive, so an unbudgeted category is never reported as over budget.
func ComputeCategorySummary(
	category CategoryRef,
	budget, spent, earned decimal.Decimal,
	transactionCount int,
	rolloverEnabled bool,
) CategorySummary {
	return CategorySummary{
		Category:         category,
		Budget:           budget,
		Spent:            spent,
		Earned:           earned,
		Remaining:        budget.Sub(spent),
		BudgetPercentage: percentOf(spent, budget),
		TransactionCount: transactionCount,
		RolloverEnabled:  rolloverEnabled,
	}
}

// SummaryTotals aggregates a month of summaries the way the dashboard header shows them.
type SummaryTotals struct {
	TotalSpent  decimal.Decimal // expense categories only
	TotalBudget decimal.Decimal // expense categories only
	TotalEarned decimal.Decimal // income categories only
	Utilization float64
}

// SummarizeTotals sums expense spend and budget, income earnings, and the overall utilization.
func SummarizeTotals(summaries []CategorySummary) SummaryTotals {
	totals := SummaryTotals{
		TotalSpent:  decimal.Zero,
		TotalBudget: decimal.Zero,
		TotalEarned: decimal.Zero,
	}
	for _, s := range summaries {
		switch s.Category.Kind {
		case entity.CategoryKindExpense:
			totals.TotalSpent = totals.TotalSpent.Add(s.Spent)
			totals.TotalBudget = totals.TotalBudget.Add(s.Budget)
		case entity.CategoryKindIncome:
			totals.TotalEarned = totals.TotalEarned.Add(s.Earned)
		}
	}
	totals.Utilization = percentOf(totals.TotalSpent, totals.TotalBudget)
	return totals
}

// TopCategories returns the categories of the given kind with the largest activity:
// spent for expense categories, earned for income categories.
func TopCategories(summaries []CategorySummary, kind entity.CategoryKind, limit int) []CategorySummary {
	if limit <= 0 {
		limit = DefaultTopCategoriesLimit
	}

	filtered := make([]CategorySummary, 0, len(summaries))
	for _, s := range summaries {
		if s.Category.Kind == kind {
			filtered = append(filtered, s)
		}
	}

	metric := func(s CategorySummary) decimal.Decimal {
		if kind == entity.CategoryKindIncome {
			return s.Earned
		}
		return s.Spent
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return metric(filtered[i]).GreaterThan(metric(filtered[j]))
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// percentOf returns part/whole*100 rounded to 2 places, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).Round(2).InexactFloat64()
}
