package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/usecase/transaction"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
)

const dateLayout = "2006-01-02"

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	householdID, ok := parseHouseholdID(ctx, ctx.Query("household_id"))
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		HouseholdID: householdID,
		UserID:      userID,
		Search:      ctx.Query("search"),
	}

	// Parse reference filters
	if raw := ctx.Query("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			invalidFilter(ctx, "Invalid account_id")
			return
		}
		input.AccountID = &id
	}
	if raw := ctx.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			invalidFilter(ctx, "Invalid category_id")
			return
		}
		input.CategoryID = &id
	}

	// Parse date filters; a bare date_to covers the whole day
	if raw := ctx.Query("date_from"); raw != "" {
		from, err := parseDateParam(raw, false)
		if err != nil {
			invalidFilter(ctx, "date_from must be YYYY-MM-DD or RFC3339")
			return
		}
		input.DateFrom = &from
	}
	if raw := ctx.Query("date_to"); raw != "" {
		to, err := parseDateParam(raw, true)
		if err != nil {
			invalidFilter(ctx, "date_to must be YYYY-MM-DD or RFC3339")
			return
		}
		input.DateTo = &to
	}

	// Parse pagination
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			invalidFilter(ctx, "limit must be a number")
			return
		}
		input.Limit = limit
	}
	if raw := ctx.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			invalidFilter(ctx, "offset must be a number")
			return
		}
		input.Offset = offset
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToTransactionListResponse(output)))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	householdID, ok := parseHouseholdID(ctx, req.HouseholdID)
	if !ok {
		return
	}

	occurredAt, err := parseDateParam(req.OccurredAt, false)
	if err != nil {
		respond(ctx, http.StatusBadRequest, "occurred_at must be YYYY-MM-DD or RFC3339", string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	// Binding already validated the UUIDs
	accountID := uuid.MustParse(req.AccountID)
	categories := make([]entity.CategoryAssignment, len(req.Categories))
	for i, cat := range req.Categories {
		categories[i] = entity.CategoryAssignment{
			CategoryID: uuid.MustParse(cat.CategoryID),
			Weight:     cat.Weight,
		}
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		HouseholdID: householdID,
		UserID:      userID,
		AccountID:   accountID,
		Amount:      req.Amount,
		Direction:   entity.TransactionDirection(req.Direction),
		OccurredAt:  occurredAt,
		Description: req.Description,
		Merchant:    req.Merchant,
		Currency:    entity.Currency(req.Currency),
		Categories:  categories,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Wrap(dto.ToTransactionResponse(output.Transaction)))
}

func invalidFilter(ctx *gin.Context, message string) {
	respond(ctx, http.StatusBadRequest, message, string(domainerror.ErrCodeInvalidTransactionFilter))
}

// parseDateParam accepts YYYY-MM-DD (UTC) or RFC3339. With endOfDay, a bare date
// resolves to the last instant of that day.
func parseDateParam(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
