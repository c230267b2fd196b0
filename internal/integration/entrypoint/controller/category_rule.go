package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	categoryrule "github.com/household-ledger/backend/internal/application/usecase/category_rule"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
)

// CategoryRuleController handles categorization rule endpoints.
type CategoryRuleController struct {
	listUseCase            *categoryrule.ListCategoryRulesUseCase
	createUseCase          *categoryrule.CreateCategoryRuleUseCase
	fromTransactionUseCase *categoryrule.CreateRuleFromTransactionUseCase
	deleteUseCase          *categoryrule.DeleteCategoryRuleUseCase
}

// NewCategoryRuleController creates a new category rule controller instance.
func NewCategoryRuleController(
	listUseCase *categoryrule.ListCategoryRulesUseCase,
	createUseCase *categoryrule.CreateCategoryRuleUseCase,
	fromTransactionUseCase *categoryrule.CreateRuleFromTransactionUseCase,
	deleteUseCase *categoryrule.DeleteCategoryRuleUseCase,
) *CategoryRuleController {
	return &CategoryRuleController{
		listUseCase:            listUseCase,
		createUseCase:          createUseCase,
		fromTransactionUseCase: fromTransactionUseCase,
		deleteUseCase:          deleteUseCase,
	}
}

// List handles GET /rules requests.
func (c *CategoryRuleController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	householdID, ok := parseHouseholdID(ctx, ctx.Query("household_id"))
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), categoryrule.ListCategoryRulesInput{
		HouseholdID: householdID,
		UserID:      userID,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToCategoryRuleListResponse(output.Rules)))
}

// Create handles POST /rules requests.
func (c *CategoryRuleController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest,
			"Missing required fields: household_id, match_type, match_value, category_id",
			string(domainerror.ErrCodeMissingRuleFields))
		return
	}

	householdID, ok := parseHouseholdID(ctx, req.HouseholdID)
	if !ok {
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid category ID format", string(domainerror.ErrCodeMissingRuleFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), categoryrule.CreateCategoryRuleInput{
		HouseholdID: householdID,
		UserID:      userID,
		CategoryID:  categoryID,
		MatchType:   entity.RuleMatchType(req.MatchType),
		MatchValue:  req.MatchValue,
		Priority:    req.Priority,
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Wrap(dto.ToCategoryRuleResponse(output.Rule)))
}

// CreateFromTransaction handles POST /rules/from-transaction requests.
func (c *CategoryRuleController) CreateFromTransaction(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateRuleFromTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest,
			"Missing required fields: transaction_id, category_id, rule_type",
			string(domainerror.ErrCodeMissingRuleFields))
		return
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid transaction ID format", string(domainerror.ErrCodeMissingRuleFields))
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid category ID format", string(domainerror.ErrCodeMissingRuleFields))
		return
	}

	output, err := c.fromTransactionUseCase.Execute(ctx.Request.Context(), categoryrule.CreateRuleFromTransactionInput{
		TransactionID: transactionID,
		CategoryID:    categoryID,
		UserID:        userID,
		MatchType:     entity.RuleMatchType(req.RuleType),
	})
	if err != nil {
		handleError(ctx, err, "transaction_id", transactionID)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Wrap(dto.RuleFromTransactionResponse{
		Rule:                 dto.ToCategoryRuleResponse(output.Rule),
		AppliedToTransaction: output.AppliedToTransaction,
	}))
}

// Delete handles DELETE /rules/:id requests.
func (c *CategoryRuleController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid rule ID format", string(domainerror.ErrCodeMissingRuleFields))
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), categoryrule.DeleteCategoryRuleInput{
		RuleID: ruleID,
		UserID: userID,
	}); err != nil {
		handleError(ctx, err, "rule_id", ruleID)
		return
	}

	ctx.Status(http.StatusNoContent)
}
