package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod is the monthly instance budgets and spend are measured against.
// Month is always the first day of a month at 00:00 UTC.
type BudgetPeriod struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Month       time.Time
	CreatedAt   time.Time
}

// Budget is the planned spend ceiling for one category in one period.
type Budget struct {
	ID              uuid.UUID
	PeriodID        uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	RolloverEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBudget creates a new Budget entity for an upsert.
func NewBudget(periodID, categoryID uuid.UUID, amount decimal.Decimal, rolloverEnabled bool) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:              uuid.New(),
		PeriodID:        periodID,
		CategoryID:      categoryID,
		Amount:          amount,
		RolloverEnabled: rolloverEnabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
