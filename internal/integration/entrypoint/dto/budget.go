package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/usecase/budget"
	"github.com/household-ledger/backend/internal/domain/entity"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

// BudgetItemRequest sets one category's budget for the month.
type BudgetItemRequest struct {
	CategoryID      string          `json:"category_id" binding:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"`
	RolloverEnabled bool            `json:"rollover_enabled"`
}

// UpsertBudgetsRequest represents the request body for budget upserts.
type UpsertBudgetsRequest struct {
	HouseholdID string              `json:"household_id" binding:"required,uuid"`
	Month       string              `json:"month" binding:"required"`
	Budgets     []BudgetItemRequest `json:"budgets" binding:"dive"`
}

// RolloverRequest represents the request body for applying a rollover.
type RolloverRequest struct {
	HouseholdID string `json:"household_id" binding:"required,uuid"`
	FromMonth   string `json:"from_month" binding:"required"`
	ToMonth     string `json:"to_month" binding:"required"`
}

// CategorySummaryResponse represents one category row of a month.
// CategoryID is null for the uncategorized row.
type CategorySummaryResponse struct {
	CategoryID       *string `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	CategoryKind     string  `json:"category_kind"`
	Icon             string  `json:"icon"`
	Color            string  `json:"color"`
	Budget           float64 `json:"budget"`
	Spent            float64 `json:"spent"`
	Earned           float64 `json:"earned"`
	Remaining        float64 `json:"remaining"`
	BudgetPercentage float64 `json:"budget_percentage"`
	TransactionCount int     `json:"transaction_count"`
	RolloverEnabled  bool    `json:"rollover_enabled"`
}

// BurnRateResponse represents the month's spending pace.
type BurnRateResponse struct {
	Spent                 float64 `json:"spent"`
	Budget                float64 `json:"budget"`
	Remaining             float64 `json:"remaining"`
	DailyAverage          float64 `json:"daily_average"`
	DailyBurnRate         float64 `json:"daily_burn_rate"`
	ProjectedMonthlySpend float64 `json:"projected_monthly_spend"`
	RemainingDays         int     `json:"remaining_days"`
	SuggestedDailySpend   float64 `json:"suggested_daily_spend"`
}

// MonthlyBudgetResponse represents the monthly budget view.
type MonthlyBudgetResponse struct {
	HouseholdID   string                    `json:"household_id"`
	Month         string                    `json:"month"`
	Categories    []CategorySummaryResponse `json:"categories"`
	BurnRate      *BurnRateResponse         `json:"burn_rate"`
	AllCategories []CategoryResponse        `json:"all_categories"`
}

// SummaryTotalsResponse represents the month's totals across categories.
type SummaryTotalsResponse struct {
	TotalSpent  float64 `json:"total_spent"`
	TotalBudget float64 `json:"total_budget"`
	TotalEarned float64 `json:"total_earned"`
	Utilization float64 `json:"utilization"`
}

// CategorySummaryListResponse represents the category summary endpoint body.
type CategorySummaryListResponse struct {
	HouseholdID string                    `json:"household_id"`
	Month       string                    `json:"month"`
	Summaries   []CategorySummaryResponse `json:"summaries"`
	Totals      SummaryTotalsResponse     `json:"totals"`
	TopExpenses []CategorySummaryResponse `json:"top_expenses"`
	TopIncome   []CategorySummaryResponse `json:"top_income"`
}

// BudgetResponse represents a stored budget row.
type BudgetResponse struct {
	ID              string  `json:"id"`
	PeriodID        string  `json:"period_id"`
	CategoryID      string  `json:"category_id"`
	Amount          float64 `json:"amount"`
	RolloverEnabled bool    `json:"rollover_enabled"`
}

// UpsertBudgetsResponse represents the result of a budget upsert.
type UpsertBudgetsResponse struct {
	PeriodID string           `json:"period_id"`
	Month    string           `json:"month"`
	Budgets  []BudgetResponse `json:"budgets"`
}

// RolloverAdjustmentResponse represents one carried-forward amount.
type RolloverAdjustmentResponse struct {
	CategoryID     string  `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	PreviousAmount float64 `json:"previous_amount"`
	Adjustment     float64 `json:"adjustment"`
	NewAmount      float64 `json:"new_amount"`
}

// RolloverResponse represents the result of a rollover.
type RolloverResponse struct {
	FromMonth           string                       `json:"from_month"`
	ToMonth             string                       `json:"to_month"`
	CategoriesProcessed int                          `json:"categories_processed"`
	AdjustmentsApplied  int                          `json:"adjustments_applied"`
	AppliedAdjustments  []RolloverAdjustmentResponse `json:"applied_adjustments"`
	Message             string                       `json:"message"`
}

// ToCategorySummaryResponse converts a category summary to a response DTO.
func ToCategorySummaryResponse(s valueobject.CategorySummary) CategorySummaryResponse {
	var categoryID *string
	if s.Category.ID != nil {
		id := s.Category.ID.String()
		categoryID = &id
	}

	return CategorySummaryResponse{
		CategoryID:       categoryID,
		CategoryName:     s.Category.Name,
		CategoryKind:     string(s.Category.Kind),
		Icon:             s.Category.Icon,
		Color:            s.Category.Color,
		Budget:           Money(s.Budget),
		Spent:            Money(s.Spent),
		Earned:           Money(s.Earned),
		Remaining:        Money(s.Remaining),
		BudgetPercentage: Percent(s.BudgetPercentage),
		TransactionCount: s.TransactionCount,
		RolloverEnabled:  s.RolloverEnabled,
	}
}

func toCategorySummaryResponses(summaries []valueobject.CategorySummary) []CategorySummaryResponse {
	responses := make([]CategorySummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = ToCategorySummaryResponse(s)
	}
	return responses
}

// ToBurnRateResponse converts a burn rate to a response DTO. A nil burn rate stays nil.
func ToBurnRateResponse(b *valueobject.BurnRate) *BurnRateResponse {
	if b == nil {
		return nil
	}
	return &BurnRateResponse{
		Spent:                 Money(b.Spent),
		Budget:                Money(b.Budget),
		Remaining:             Money(b.Remaining),
		DailyAverage:          Money(b.DailyAverage),
		DailyBurnRate:         Money(b.DailyBurnRate),
		ProjectedMonthlySpend: Money(b.ProjectedMonthlySpend),
		RemainingDays:         b.RemainingDays,
		SuggestedDailySpend:   Money(b.SuggestedDailySpend),
	}
}

// ToMonthlyBudgetResponse converts a GetMonthlyBudgetOutput to a MonthlyBudgetResponse DTO.
func ToMonthlyBudgetResponse(output *budget.GetMonthlyBudgetOutput) MonthlyBudgetResponse {
	return MonthlyBudgetResponse{
		HouseholdID:   output.HouseholdID.String(),
		Month:         valueobject.FormatMonth(output.Month),
		Categories:    toCategorySummaryResponses(output.Categories),
		BurnRate:      ToBurnRateResponse(output.BurnRate),
		AllCategories: ToCategoryListResponse(output.AllCategories),
	}
}

// ToCategorySummaryListResponse converts a GetCategorySummaryOutput to its response DTO.
func ToCategorySummaryListResponse(output *budget.GetCategorySummaryOutput) CategorySummaryListResponse {
	return CategorySummaryListResponse{
		HouseholdID: output.HouseholdID.String(),
		Month:       valueobject.FormatMonth(output.Month),
		Summaries:   toCategorySummaryResponses(output.Summaries),
		Totals: SummaryTotalsResponse{
			TotalSpent:  Money(output.Totals.TotalSpent),
			TotalBudget: Money(output.Totals.TotalBudget),
			TotalEarned: Money(output.Totals.TotalEarned),
			Utilization: Percent(output.Totals.Utilization),
		},
		TopExpenses: toCategorySummaryResponses(output.TopExpenses),
		TopIncome:   toCategorySummaryResponses(output.TopIncome),
	}
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:              b.ID.String(),
		PeriodID:        b.PeriodID.String(),
		CategoryID:      b.CategoryID.String(),
		Amount:          Money(b.Amount),
		RolloverEnabled: b.RolloverEnabled,
	}
}

// ToUpsertBudgetsResponse converts an UpsertBudgetsOutput to its response DTO.
func ToUpsertBudgetsResponse(output *budget.UpsertBudgetsOutput) UpsertBudgetsResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, b := range output.Budgets {
		budgets[i] = ToBudgetResponse(b)
	}
	return UpsertBudgetsResponse{
		PeriodID: output.Period.ID.String(),
		Month:    valueobject.FormatMonth(output.Period.Month),
		Budgets:  budgets,
	}
}

// ToRolloverResponse converts an ApplyRolloverOutput to a RolloverResponse DTO.
func ToRolloverResponse(output *budget.ApplyRolloverOutput) RolloverResponse {
	adjustments := make([]RolloverAdjustmentResponse, len(output.Adjustments))
	for i, a := range output.Adjustments {
		adjustments[i] = RolloverAdjustmentResponse{
			CategoryID:     a.CategoryID.String(),
			CategoryName:   a.CategoryName,
			PreviousAmount: Money(a.PreviousAmount),
			Adjustment:     Money(a.Adjustment),
			NewAmount:      Money(a.NewAmount),
		}
	}

	from := valueobject.FormatMonth(output.FromMonth)
	to := valueobject.FormatMonth(output.ToMonth)
	return RolloverResponse{
		FromMonth:           from,
		ToMonth:             to,
		CategoriesProcessed: output.CategoriesProcessed,
		AdjustmentsApplied:  len(adjustments),
		AppliedAdjustments:  adjustments,
		Message:             fmt.Sprintf("Rolled over %d categories from %s to %s", len(adjustments), from, to),
	}
}
