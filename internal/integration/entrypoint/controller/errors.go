package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
)

// handleError maps coded domain errors to HTTP responses. Anything else is a store
// failure: it is logged with the request attributes and hidden behind a generic 500.
func handleError(ctx *gin.Context, err error, attrs ...any) {
	var (
		budgetErr    *domainerror.BudgetError
		householdErr *domainerror.HouseholdError
		categoryErr  *domainerror.CategoryError
		accountErr   *domainerror.AccountError
		txnErr       *domainerror.TransactionError
		ruleErr      *domainerror.CategoryRuleError
	)

	switch {
	case errors.As(err, &budgetErr):
		respond(ctx, statusForBudgetError(budgetErr.Code), budgetErr.Message, string(budgetErr.Code))
	case errors.As(err, &householdErr):
		respond(ctx, statusForHouseholdError(householdErr.Code), householdErr.Message, string(householdErr.Code))
	case errors.As(err, &categoryErr):
		respond(ctx, statusForCategoryError(categoryErr.Code), categoryErr.Message, string(categoryErr.Code))
	case errors.As(err, &accountErr):
		respond(ctx, statusForAccountError(accountErr.Code), accountErr.Message, string(accountErr.Code))
	case errors.As(err, &txnErr):
		respond(ctx, statusForTransactionError(txnErr.Code), txnErr.Message, string(txnErr.Code))
	case errors.As(err, &ruleErr):
		respond(ctx, statusForCategoryRuleError(ruleErr.Code), ruleErr.Message, string(ruleErr.Code))
	default:
		attrs = append(attrs, "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
		if memberID, ok := middleware.MemberIDFromContext(ctx.Request.Context()); ok {
			attrs = append(attrs, "member_id", memberID)
		}
		slog.ErrorContext(ctx.Request.Context(), "Request failed", attrs...)
		respond(ctx, http.StatusInternalServerError, "An internal error occurred", "")
	}
}

func respond(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// requireUser reads the authenticated user or answers 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respond(ctx, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
		return uuid.Nil, false
	}
	return userID, true
}

// parseHouseholdID parses a household ID or answers 400.
func parseHouseholdID(ctx *gin.Context, raw string) (uuid.UUID, bool) {
	if raw == "" {
		respond(ctx, http.StatusBadRequest, "household_id is required", string(domainerror.ErrCodeMissingHouseholdFields))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respond(ctx, http.StatusBadRequest, "Invalid household ID format", string(domainerror.ErrCodeInvalidHouseholdID))
		return uuid.Nil, false
	}
	return id, true
}

func statusForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeRolloverAlreadyApplied:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeNegativeBudgetAmount,
		domainerror.ErrCodeInvalidRolloverRange,
		domainerror.ErrCodeMissingBudgetFields,
		domainerror.ErrCodeBudgetCategoryNotInHouse,
		domainerror.ErrCodeEmptyBudgetList:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForHouseholdError(code domainerror.HouseholdErrorCode) int {
	switch code {
	case domainerror.ErrCodeHouseholdNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotHouseholdMember,
		domainerror.ErrCodeInsufficientPermissions,
		domainerror.ErrCodeOwnerRequired:
		return http.StatusForbidden
	case domainerror.ErrCodeMemberAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeHouseholdNameRequired,
		domainerror.ErrCodeHouseholdNameTooLong,
		domainerror.ErrCodeUnsupportedCurrency,
		domainerror.ErrCodeMissingHouseholdFields,
		domainerror.ErrCodeInvalidHouseholdID,
		domainerror.ErrCodeInvalidMemberRole,
		domainerror.ErrCodeInvalidMemberUserID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryUsedInTransactions,
		domainerror.ErrCodeCategoryUsedInBudgets:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidColorFormat,
		domainerror.ErrCodeCategoryNameRequired,
		domainerror.ErrCodeInvalidCategoryKind,
		domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForAccountError(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAccountName,
		domainerror.ErrCodeInvalidAccountType,
		domainerror.ErrCodeInvalidAccountCurrency,
		domainerror.ErrCodeMissingAccountFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionDirection,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeDescriptionRequired,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeInvalidCategoryWeights,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidTransactionFilter,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeTxnAccountNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForCategoryRuleError(code domainerror.CategoryRuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryRuleNotFound,
		domainerror.ErrCodeCategoryNotFoundForRule,
		domainerror.ErrCodeTransactionNotFoundForRule:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryRuleExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidRuleMatchType,
		domainerror.ErrCodeRuleMatchValueTooLong,
		domainerror.ErrCodeRuleMatchValueRequired,
		domainerror.ErrCodeMissingRuleFields,
		domainerror.ErrCodeInvalidRulePriority,
		domainerror.ErrCodeTransactionWithoutMerchant:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
