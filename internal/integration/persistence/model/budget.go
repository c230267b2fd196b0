package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// BudgetPeriodModel represents the budget_periods table in the database.
// (household_id, month) is unique; month is always the first day of a month in UTC.
type BudgetPeriodModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_budget_periods_household_month"`
	Month       time.Time `gorm:"type:date;not null;uniqueIndex:idx_budget_periods_household_month"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetPeriodModel.
func (BudgetPeriodModel) TableName() string {
	return "budget_periods"
}

// ToEntity converts a BudgetPeriodModel to a domain BudgetPeriod entity.
func (m *BudgetPeriodModel) ToEntity() *entity.BudgetPeriod {
	return &entity.BudgetPeriod{
		ID:          m.ID,
		HouseholdID: m.HouseholdID,
		Month:       m.Month.UTC(),
		CreatedAt:   m.CreatedAt,
	}
}

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PeriodID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_period_category"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_period_category;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RolloverEnabled bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:              m.ID,
		PeriodID:        m.PeriodID,
		CategoryID:      m.CategoryID,
		Amount:          m.Amount,
		RolloverEnabled: m.RolloverEnabled,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:              budget.ID,
		PeriodID:        budget.PeriodID,
		CategoryID:      budget.CategoryID,
		Amount:          budget.Amount,
		RolloverEnabled: budget.RolloverEnabled,
		CreatedAt:       budget.CreatedAt,
		UpdatedAt:       budget.UpdatedAt,
	}
}
