package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/usecase/account"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
)

// AccountController handles account endpoints.
type AccountController struct {
	listUseCase   *account.ListAccountsUseCase
	createUseCase *account.CreateAccountUseCase
	updateUseCase *account.UpdateAccountUseCase
	deleteUseCase *account.DeleteAccountUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	listUseCase *account.ListAccountsUseCase,
	createUseCase *account.CreateAccountUseCase,
	updateUseCase *account.UpdateAccountUseCase,
	deleteUseCase *account.DeleteAccountUseCase,
) *AccountController {
	return &AccountController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	householdID, ok := parseHouseholdID(ctx, ctx.Query("household_id"))
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		HouseholdID:     householdID,
		UserID:          userID,
		IncludeArchived: ctx.Query("include_archived") == "true",
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToAccountListResponse(output.Accounts)))
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingAccountFields))
		return
	}

	householdID, ok := parseHouseholdID(ctx, req.HouseholdID)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		HouseholdID:    householdID,
		UserID:         userID,
		Name:           req.Name,
		Type:           entity.AccountType(req.Type),
		InitialBalance: req.InitialBalance,
		Currency:       entity.Currency(req.Currency),
	})
	if err != nil {
		handleError(ctx, err, "household_id", householdID)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Wrap(dto.ToAccountResponse(output.Account, output.Account.InitialBalance)))
}

// Update handles PATCH /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid account ID format", string(domainerror.ErrCodeMissingAccountFields))
		return
	}

	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingAccountFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), account.UpdateAccountInput{
		AccountID:      accountID,
		UserID:         userID,
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
		IsArchived:     req.IsArchived,
	})
	if err != nil {
		handleError(ctx, err, "account_id", accountID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.ToAccountResponse(output.Account, output.CurrentBalance)))
}

// Delete handles DELETE /accounts/:id requests. Accounts with history are archived.
func (c *AccountController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid account ID format", string(domainerror.ErrCodeMissingAccountFields))
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), account.DeleteAccountInput{
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		handleError(ctx, err, "account_id", accountID)
		return
	}

	ctx.JSON(http.StatusOK, dto.Wrap(dto.DeleteAccountResponse{
		ID:       accountID.String(),
		Archived: output.Archived,
	}))
}
