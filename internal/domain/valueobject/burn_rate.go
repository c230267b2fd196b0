package valueobject

import (
	"github.com/shopspring/decimal"
)

// BurnRate is the month-to-date spending pace of a household.
type BurnRate struct {
	Spent                 decimal.Decimal
	Budget                decimal.Decimal
	Remaining             decimal.Decimal
	DailyAverage          decimal.Decimal
	DailyBurnRate         decimal.Decimal
	ProjectedMonthlySpend decimal.Decimal
	DayOfMonth            int
	DaysInMonth           int
	RemainingDays         int
	SuggestedDailySpend   decimal.Decimal
}

// ComputeBurnRate projects end-of-month spend linearly from the month-to-date average.
//
// dayOfMonth is clamped to [1, daysInMonth] so the first instant of a month never divides
// by zero. The suggested daily spend is what is left of the budget spread over the remaining
// days; it is 0 when the budget is already exhausted or no days remain.
func ComputeBurnRate(totalSpent, totalBudget decimal.Decimal, dayOfMonth, daysInMonth int) BurnRate {
	if daysInMonth < 1 {
		daysInMonth = 1
	}
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	if dayOfMonth > daysInMonth {
		dayOfMonth = daysInMonth
	}

	dailyAverage := totalSpent.Div(decimal.NewFromInt(int64(dayOfMonth)))
	projected := dailyAverage.Mul(decimal.NewFromInt(int64(daysInMonth)))
	remainingDays := daysInMonth - dayOfMonth

	suggested := decimal.Zero
	if remainingDays > 0 {
		left := decimal.Max(decimal.Zero, totalBudget.Sub(totalSpent))
		suggested = left.Div(decimal.NewFromInt(int64(remainingDays)))
	}

	return BurnRate{
		Spent:                 totalSpent,
		Budget:                totalBudget,
		Remaining:             totalBudget.Sub(totalSpent),
		DailyAverage:          dailyAverage.Round(2),
		DailyBurnRate:         dailyAverage.Round(2),
		ProjectedMonthlySpend: projected.Round(2),
		DayOfMonth:            dayOfMonth,
		DaysInMonth:           daysInMonth,
		RemainingDays:         remainingDays,
		SuggestedDailySpend:   suggested.Round(2),
	}
}
