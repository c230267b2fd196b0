package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/budget"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/domain/valueobject"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles the monthly budget endpoints.
type BudgetController struct {
	getMonthlyBudgetUseCase   *budget.GetMonthlyBudgetUseCase
	getCategorySummaryUseCase *budget.GetCategorySummaryUseCase
	upsertBudgetsUseCase      *budget.UpsertBudgetsUseCase
	applyRolloverUseCase      *budget.ApplyRolloverUseCase
	clock                     adapter.Clock
}

// NewBudgetController creates a new budget controller instance.
// The clock supplies the default month when a request omits it.
func NewBudgetController(
	getMonthlyBudgetUseCase *budget.GetMonthlyBudgetUseCase,
	getCategorySummaryUseCase *budget.GetCategorySummaryUseCase,
	upsertBudgetsUseCase *budget.UpsertBudgetsUseCase,
	applyRolloverUseCase *budget.ApplyRolloverUseCase,
	clock adapter.Clock,
) *BudgetController {
	return &BudgetController{
		getMonthlyBudgetUseCase:   getMonthlyBudgetUseCase,
		getCategorySummaryUseCase: getCategorySummaryUseCase,
		upsertBudgetsUseCase:      upsertBudgetsUseCase,
		applyRolloverUseCase:      applyRolloverUseCase,
		clock:                     clock,
	}
}

// GetMonthly handles GET /budgets requests.
func (c *BudgetController) GetMonthly(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	householdID, ok := parseHouseholdID(ctx, ctx.Query("household_id"))
	if !ok {
		return
	}

	month := c.monthParam(ctx)
	output, err := c.getMonthlyBudgetUseCase.Execute(ctx.Request.Context(), budget.GetMonthlyBudgetInput{
		HouseholdID: householdID,
		UserID:      userID,
		Month:       month,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID, "month", month)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToMonthlyBudgetResponse(output)))
}

// GetCategorySummary handles GET /category-summary requests.
func (c *BudgetController) GetCategorySummary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	householdID, ok := parseHouseholdID(ctx, ctx.Query("household_id"))
	if !ok {
		return
	}

	input := budget.GetCategorySummaryInput{
		HouseholdID: householdID,
		UserID:      userID,
		Month:       c.monthParam(ctx),
	}
	if raw := ctx.Query("top"); raw != "" {
		top, err := strconv.Atoi(raw)
		if err != nil || top < 1 {
			respond(ctx, http.StatusBadRequest, "top must be a positive number", string(domainerror.ErrCodeMissingBudgetFields))
			return
		}
		input.TopLimit = top
	}

	output, err := c.getCategorySummaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err, "household_id", householdID, "month", input.Month)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToCategorySummaryListResponse(output)))
}

// Upsert handles POST /budgets requests.
func (c *BudgetController) Upsert(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpsertBudgetsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	householdID, ok := parseHouseholdID(ctx, req.HouseholdID)
	if !ok {
		return
	}

	items := make([]budget.BudgetItemInput, len(req.Budgets))
	for i, b := range req.Budgets {
		items[i] = budget.BudgetItemInput{
			CategoryID:      uuid.MustParse(b.CategoryID),
			Amount:          b.Amount,
			RolloverEnabled: b.RolloverEnabled,
		}
	}

	output, err := c.upsertBudgetsUseCase.Execute(ctx.Request.Context(), budget.UpsertBudgetsInput{
		HouseholdID: householdID,
		UserID:      userID,
		Month:       req.Month,
		Budgets:     items,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID, "month", req.Month)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToUpsertBudgetsResponse(output)))
}

// Rollover handles POST /budgets/rollover requests.
func (c *BudgetController) Rollover(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.RolloverRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	householdID, ok := parseHouseholdID(ctx, req.HouseholdID)
	if !ok {
		return
	}

	output, err := c.applyRolloverUseCase.Execute(ctx.Request.Context(), budget.ApplyRolloverInput{
		HouseholdID: householdID,
		UserID:      userID,
		FromMonth:   req.FromMonth,
		ToMonth:     req.ToMonth,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID, "from_month", req.FromMonth, "to_month", req.ToMonth)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToRolloverResponse(output)))
}

// monthParam returns the month query parameter, defaulting to the current month.
func (c *BudgetController) monthParam(ctx *gin.Context) string {
	if month := ctx.Query("month"); month != "" {
		return month
	}
	return valueobject.FormatMonth(c.clock.Now())
}
