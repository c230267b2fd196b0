package valueobject

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/household-ledger/backend/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expenseRef(name string) CategoryRef {
	id := uuid.New()
	return CategoryRef{ID: &id, Name: name, Kind: entity.CategoryKindExpense}
}

func incomeRef(name string) CategoryRef {
	id := uuid.New()
	return CategoryRef{ID: &id, Name: name, Kind: entity.CategoryKindIncome}
}

func TestComputeCategorySummary(t *testing.T) {
	t.Run("under budget", func(t *testing.T) {
		s := ComputeCategorySummary(expenseRef("Groceries"), dec("600"), dec("87.50"), decimal.Zero, 3, false)

		assert.True(t, s.Remaining.Equal(dec("512.50")), "remaining = %s", s.Remaining)
		assert.InDelta(t, 14.58, s.BudgetPercentage, 0.001)
		assert.Equal(t, 3, s.TransactionCount)
	})

	t.Run("over budget", func(t *testing.T) {
		s := ComputeCategorySummary(expenseRef("Dining"), dec("300"), dec("380"), decimal.Zero, 7, true)

		assert.True(t, s.Remaining.Equal(dec("-80")), "remaining = %s", s.Remaining)
		assert.InDelta(t, 126.67, s.BudgetPercentage, 0.001)
		assert.True(t, s.RolloverEnabled)
	})

	t.Run("zero budget never reports a percentage", func(t *testing.T) {
		for _, spent := range []string{"0", "0.01", "50", "123456.78"} {
			s := ComputeCategorySummary(expenseRef("Misc"), decimal.Zero, dec(spent), decimal.Zero, 1, false)

			assert.Equal(t, 0.0, s.BudgetPercentage, "spent %s", spent)
			assert.False(t, math.IsNaN(s.BudgetPercentage))
			assert.False(t, math.IsInf(s.BudgetPercentage, 0))
			assert.True(t, s.Remaining.Equal(dec(spent).Neg()))
		}
	})

	t.Run("remaining is exact to the cent", func(t *testing.T) {
		cases := [][2]string{{"0.30", "0.10"}, {"100.05", "33.35"}, {"19.99", "20.00"}, {"0", "0"}}
		for _, c := range cases {
			budget, spent := dec(c[0]), dec(c[1])
			s := ComputeCategorySummary(expenseRef("X"), budget, spent, decimal.Zero, 0, false)
			assert.True(t, s.Remaining.Equal(budget.Sub(spent)), "budget %s spent %s", c[0], c[1])
		}
	})
}

func TestComputeBurnRate(t *testing.T) {
	t.Run("mid month projection", func(t *testing.T) {
		br := ComputeBurnRate(dec("300"), dec("900"), 10, 30)

		assert.True(t, br.DailyAverage.Equal(dec("30")))
		assert.True(t, br.DailyBurnRate.Equal(br.DailyAverage))
		assert.True(t, br.ProjectedMonthlySpend.Equal(dec("900")))
		assert.Equal(t, 20, br.RemainingDays)
		assert.True(t, br.SuggestedDailySpend.Equal(dec("30")))
		assert.True(t, br.Remaining.Equal(dec("600")))
	})

	t.Run("over budget suggests zero", func(t *testing.T) {
		br := ComputeBurnRate(dec("380"), dec("300"), 15, 30)

		assert.True(t, br.SuggestedDailySpend.IsZero())
		assert.True(t, br.Remaining.Equal(dec("-80")))
	})

	t.Run("day zero is treated as day one", func(t *testing.T) {
		br := ComputeBurnRate(dec("45"), dec("300"), 0, 30)

		assert.Equal(t, 1, br.DayOfMonth)
		assert.True(t, br.DailyAverage.Equal(dec("45")))
		assert.Equal(t, 29, br.RemainingDays)
	})

	t.Run("last day has no remaining days", func(t *testing.T) {
		br := ComputeBurnRate(dec("100"), dec("300"), 31, 31)

		assert.Equal(t, 0, br.RemainingDays)
		assert.True(t, br.SuggestedDailySpend.IsZero())
	})

	t.Run("day beyond month length is clamped", func(t *testing.T) {
		br := ComputeBurnRate(dec("100"), dec("300"), 40, 30)

		assert.Equal(t, 30, br.DayOfMonth)
		assert.Equal(t, 0, br.RemainingDays)
	})

	t.Run("suggested daily spend is never negative", func(t *testing.T) {
		for day := 1; day <= 31; day++ {
			for _, spent := range []string{"0", "150", "300", "301", "5000"} {
				br := ComputeBurnRate(dec(spent), dec("300"), day, 31)
				assert.False(t, br.SuggestedDailySpend.IsNegative(), "day %d spent %s", day, spent)
			}
		}
	})
}

func TestApplyRollover(t *testing.T) {
	t.Run("positive remaining is added to the target budget", func(t *testing.T) {
		ref := expenseRef("Groceries")
		prev := []CategorySummary{
			ComputeCategorySummary(ref, dec("500"), dec("300"), decimal.Zero, 4, true),
		}
		target := map[uuid.UUID]decimal.Decimal{*ref.ID: dec("400")}

		adj := ApplyRollover(prev, target)

		require.Len(t, adj, 1)
		assert.Equal(t, *ref.ID, adj[0].CategoryID)
		assert.Equal(t, "Groceries", adj[0].CategoryName)
		assert.True(t, adj[0].PreviousAmount.Equal(dec("400")))
		assert.True(t, adj[0].Adjustment.Equal(dec("200")))
		assert.True(t, adj[0].NewAmount.Equal(dec("600")))
		assert.True(t, target[*ref.ID].Equal(dec("400")), "input map must not be mutated")
	})

	t.Run("disabled rollover leaves the target untouched", func(t *testing.T) {
		ref := expenseRef("Groceries")
		prev := []CategorySummary{
			ComputeCategorySummary(ref, dec("500"), dec("300"), decimal.Zero, 4, false),
		}
		target := map[uuid.UUID]decimal.Decimal{*ref.ID: dec("400")}

		assert.Empty(t, ApplyRollover(prev, target))
	})

	t.Run("overspend and exact spend contribute nothing", func(t *testing.T) {
		over := expenseRef("Dining")
		exact := expenseRef("Transport")
		prev := []CategorySummary{
			ComputeCategorySummary(over, dec("300"), dec("380"), decimal.Zero, 2, true),
			ComputeCategorySummary(exact, dec("120"), dec("120"), decimal.Zero, 2, true),
		}

		assert.Empty(t, ApplyRollover(prev, map[uuid.UUID]decimal.Decimal{}))
	})

	t.Run("missing target budget starts from zero", func(t *testing.T) {
		ref := expenseRef("Gifts")
		prev := []CategorySummary{
			ComputeCategorySummary(ref, dec("50"), dec("20"), decimal.Zero, 1, true),
		}

		adj := ApplyRollover(prev, nil)

		require.Len(t, adj, 1)
		assert.True(t, adj[0].PreviousAmount.IsZero())
		assert.True(t, adj[0].NewAmount.Equal(dec("30")))
	})

	t.Run("uncategorized rows are skipped", func(t *testing.T) {
		prev := []CategorySummary{
			ComputeCategorySummary(UncategorizedRef(), dec("10"), dec("0"), decimal.Zero, 0, true),
		}

		assert.Empty(t, ApplyRollover(prev, nil))
	})

	t.Run("never decreases a target budget", func(t *testing.T) {
		refs := []CategoryRef{expenseRef("A"), expenseRef("B"), expenseRef("C"), expenseRef("D")}
		prev := []CategorySummary{
			ComputeCategorySummary(refs[0], dec("100"), dec("40"), decimal.Zero, 1, true),
			ComputeCategorySummary(refs[1], dec("100"), dec("140"), decimal.Zero, 1, true),
			ComputeCategorySummary(refs[2], dec("0"), dec("10"), decimal.Zero, 1, true),
			ComputeCategorySummary(refs[3], dec("100"), dec("0"), decimal.Zero, 0, false),
		}
		target := map[uuid.UUID]decimal.Decimal{
			*refs[0].ID: dec("10"),
			*refs[1].ID: dec("20"),
			*refs[2].ID: dec("30"),
			*refs[3].ID: dec("40"),
		}

		for _, a := range ApplyRollover(prev, target) {
			assert.True(t, a.NewAmount.GreaterThanOrEqual(a.PreviousAmount))
			assert.True(t, a.Adjustment.IsPositive())
			assert.Equal(t, *refs[0].ID, a.CategoryID)
		}
	})

	t.Run("duplicate source rows accumulate", func(t *testing.T) {
		ref := expenseRef("Split")
		prev := []CategorySummary{
			ComputeCategorySummary(ref, dec("100"), dec("60"), decimal.Zero, 1, true),
			ComputeCategorySummary(ref, dec("100"), dec("90"), decimal.Zero, 1, true),
		}

		adj := ApplyRollover(prev, map[uuid.UUID]decimal.Decimal{*ref.ID: dec("5")})

		require.Len(t, adj, 2)
		assert.True(t, adj[1].PreviousAmount.Equal(dec("45")))
		assert.True(t, adj[1].NewAmount.Equal(dec("55")))
	})
}

func TestSummarizeTotals(t *testing.T) {
	summaries := []CategorySummary{
		ComputeCategorySummary(expenseRef("Groceries"), dec("600"), dec("87.50"), decimal.Zero, 3, false),
		ComputeCategorySummary(expenseRef("Dining"), dec("300"), dec("380"), decimal.Zero, 7, false),
		ComputeCategorySummary(incomeRef("Salary"), decimal.Zero, decimal.Zero, dec("4200"), 1, false),
	}

	totals := SummarizeTotals(summaries)

	assert.True(t, totals.TotalSpent.Equal(dec("467.50")))
	assert.True(t, totals.TotalBudget.Equal(dec("900")))
	assert.True(t, totals.TotalEarned.Equal(dec("4200")))
	assert.InDelta(t, 51.94, totals.Utilization, 0.001)

	empty := SummarizeTotals(nil)
	assert.Equal(t, 0.0, empty.Utilization)
	assert.True(t, empty.TotalSpent.IsZero())
}

func TestTopCategories(t *testing.T) {
	summaries := []CategorySummary{
		ComputeCategorySummary(expenseRef("Small"), dec("100"), dec("10"), decimal.Zero, 1, false),
		ComputeCategorySummary(expenseRef("Big"), dec("100"), dec("90"), decimal.Zero, 1, false),
		ComputeCategorySummary(expenseRef("Medium"), dec("100"), dec("50"), decimal.Zero, 1, false),
		ComputeCategorySummary(incomeRef("Salary"), decimal.Zero, decimal.Zero, dec("3000"), 1, false),
		ComputeCategorySummary(incomeRef("Interest"), decimal.Zero, decimal.Zero, dec("12"), 1, false),
	}

	top := TopCategories(summaries, entity.CategoryKindExpense, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Big", top[0].Category.Name)
	assert.Equal(t, "Medium", top[1].Category.Name)

	income := TopCategories(summaries, entity.CategoryKindIncome, 0)
	require.Len(t, income, 2)
	assert.Equal(t, "Salary", income[0].Category.Name)
}
