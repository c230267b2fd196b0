package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RolloverAdjustment records how one target-month budget changes during a rollover.
type RolloverAdjustment struct {
	CategoryID     uuid.UUID
	CategoryName   string
	PreviousAmount decimal.Decimal
	Adjustment     decimal.Decimal
	NewAmount      decimal.Decimal
}

// ApplyRollover computes the target-month budgets after carrying forward unused budget.
//
// Only rows with rollover enabled and a positive remaining contribute; overspend is never
// carried forward. A category without a target budget starts from zero. The result is not
// idempotent: applying the returned adjustments twice adds the surplus twice.
func ApplyRollover(previous []CategorySummary, targetBudgets map[uuid.UUID]decimal.Decimal) []RolloverAdjustment {
	current := make(map[uuid.UUID]decimal.Decimal, len(targetBudgets))
	for id, amount := range targetBudgets {
		current[id] = amount
	}

	adjustments := make([]RolloverAdjustment, 0)
	for _, s := range previous {
		if s.Category.ID == nil || !s.RolloverEnabled || !s.Remaining.IsPositive() {
			continue
		}
		id := *s.Category.ID

		before, ok := current[id]
		if !ok {
			before = decimal.Zero
		}
		after := before.Add(s.Remaining)
		current[id] = after

		adjustments = append(adjustments, RolloverAdjustment{
			CategoryID:     id,
			CategoryName:   s.Category.Name,
			PreviousAmount: before,
			Adjustment:     s.Remaining,
			NewAmount:      after,
		})
	}
	return adjustments
}
