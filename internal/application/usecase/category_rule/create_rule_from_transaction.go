package categoryrule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// CreateRuleFromTransactionInput represents the input for learning a rule from a transaction.
type CreateRuleFromTransactionInput struct {
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	UserID        uuid.UUID
	MatchType     entity.RuleMatchType // merchant_exact or merchant_contains
}

// CreateRuleFromTransactionOutput represents the output of learning a rule.
type CreateRuleFromTransactionOutput struct {
	Rule                 *entity.CategoryRuleWithCategory
	AppliedToTransaction bool
}

// CreateRuleFromTransactionUseCase turns a transaction's merchant into a high
// priority rule and categorizes the transaction when it has no category yet.
type CreateRuleFromTransactionUseCase struct {
	ruleRepo        adapter.CategoryRuleRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	authorizer      *household.Authorizer
}

// NewCreateRuleFromTransactionUseCase creates a new CreateRuleFromTransactionUseCase instance.
func NewCreateRuleFromTransactionUseCase(
	ruleRepo adapter.CategoryRuleRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	authorizer *household.Authorizer,
) *CreateRuleFromTransactionUseCase {
	return &CreateRuleFromTransactionUseCase{
		ruleRepo:        ruleRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		authorizer:      authorizer,
	}
}

// Execute performs the rule creation from a transaction.
func (uc *CreateRuleFromTransactionUseCase) Execute(ctx context.Context, input CreateRuleFromTransactionInput) (*CreateRuleFromTransactionOutput, error) {
	if input.MatchType != entity.RuleMatchMerchantExact && input.MatchType != entity.RuleMatchMerchantContains {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeInvalidRuleMatchType,
			"rule_type must be merchant_exact or merchant_contains",
			domainerror.ErrInvalidRuleMatchType,
		)
	}

	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewCategoryRuleError(
				domainerror.ErrCodeTransactionNotFoundForRule,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if _, err := uc.authorizer.RequireWriter(ctx, transaction.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	merchant := strings.TrimSpace(transaction.Merchant)
	if merchant == "" {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeTransactionWithoutMerchant,
			"transaction has no merchant to match on",
			domainerror.ErrTransactionWithoutMerchant,
		)
	}
	matchValue := merchant
	if input.MatchType == entity.RuleMatchMerchantContains {
		matchValue = strings.Fields(merchant)[0]
	}

	rule, err := createRule(ctx, uc.ruleRepo, uc.categoryRepo,
		transaction.HouseholdID, input.CategoryID, input.MatchType, matchValue, entity.TransactionRulePriority)
	if err != nil {
		return nil, err
	}

	applied, err := uc.transactionRepo.AssignCategoryIfUncategorized(ctx, transaction.ID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply rule to transaction: %w", err)
	}

	return &CreateRuleFromTransactionOutput{
		Rule:                 rule,
		AppliedToTransaction: applied,
	}, nil
}
