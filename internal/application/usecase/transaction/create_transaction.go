// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxMerchantLength is the maximum allowed length for merchant names.
	MaxMerchantLength = 255
)

// weightTolerance absorbs rounding when split weights are entered as thirds.
var weightTolerance = decimal.NewFromFloat(0.0001)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Direction   entity.TransactionDirection
	OccurredAt  time.Time
	Description string
	Merchant    string
	Currency    entity.Currency // Optional, defaults to the account currency
	Categories  []entity.CategoryAssignment
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	ruleRepo        adapter.CategoryRuleRepository
	authorizer      *household.Authorizer
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	ruleRepo adapter.CategoryRuleRepository,
	authorizer *household.Authorizer,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		ruleRepo:        ruleRepo,
		authorizer:      authorizer,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if _, err := uc.authorizer.RequireWriter(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if !input.Direction.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDirection,
			"direction must be 'inflow' or 'outflow'",
			domainerror.ErrInvalidTransactionDirection,
		)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionRequired,
			"description is required",
			domainerror.ErrDescriptionRequired,
		)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	merchant := strings.TrimSpace(input.Merchant)
	if utf8.RuneCountInString(merchant) > MaxMerchantLength {
		merchant = string([]rune(merchant)[:MaxMerchantLength])
	}

	categories, err := normalizeWeights(input.Categories)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotInHousehold,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnAccountNotFound,
			"account does not belong to household",
			domainerror.ErrAccountNotInHousehold,
		)
	}

	if len(categories) > 0 {
		ids := make([]uuid.UUID, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, c.CategoryID)
		}
		found, err := uc.categoryRepo.CountInHousehold(ctx, input.HouseholdID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to verify categories: %w", err)
		}
		if found != len(ids) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"one or more categories do not belong to household",
				domainerror.ErrCategoryNotInHousehold,
			)
		}
	}

	if len(categories) == 0 && merchant != "" {
		categories, err = uc.categorizeByRules(ctx, input.HouseholdID, merchant, description)
		if err != nil {
			return nil, err
		}
	}

	currency := entity.Currency(strings.ToUpper(strings.TrimSpace(string(input.Currency))))
	if currency == "" {
		currency = account.Currency
	}

	transaction := entity.NewTransaction(
		input.HouseholdID,
		input.AccountID,
		input.Amount.Round(2),
		input.Direction,
		input.OccurredAt,
		description,
		merchant,
		currency,
		categories,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}

// categorizeByRules assigns the whole amount to the category of the first matching
// rule, if any.
func (uc *CreateTransactionUseCase) categorizeByRules(ctx context.Context, householdID uuid.UUID, merchant, description string) ([]entity.CategoryAssignment, error) {
	rules, err := uc.ruleRepo.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	prioritized := make([]*entity.CategoryRule, len(rules))
	for i, r := range rules {
		prioritized[i] = r.Rule
	}
	rule := entity.FirstMatchingRule(prioritized, merchant, description)
	if rule == nil {
		return nil, nil
	}
	return []entity.CategoryAssignment{{CategoryID: rule.CategoryID, Weight: decimal.NewFromInt(1)}}, nil
}

// normalizeWeights validates split weights. A single assignment always carries the
// full amount, so its weight is forced to one.
func normalizeWeights(assignments []entity.CategoryAssignment) ([]entity.CategoryAssignment, error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(assignments))
	total := decimal.Zero
	out := make([]entity.CategoryAssignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Weight.IsNegative() || a.Weight.GreaterThan(decimal.NewFromInt(1)) {
			return nil, invalidWeights("each weight must be between 0 and 1")
		}
		if _, dup := seen[a.CategoryID]; dup {
			return nil, invalidWeights("a category can only be assigned once")
		}
		seen[a.CategoryID] = struct{}{}
		total = total.Add(a.Weight)
		out = append(out, a)
	}

	if len(out) == 1 {
		out[0].Weight = decimal.NewFromInt(1)
		return out, nil
	}

	if total.GreaterThan(decimal.NewFromInt(1).Add(weightTolerance)) {
		return nil, invalidWeights("category weights must not sum above 1")
	}
	return out, nil
}

func invalidWeights(message string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidCategoryWeights,
		message,
		domainerror.ErrInvalidCategoryWeights,
	)
}
