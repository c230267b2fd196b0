// Package categoryrule contains categorization rule use cases.
package categoryrule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// MaxMatchValueLength is the maximum allowed length for a rule match value.
const MaxMatchValueLength = 255

// CreateCategoryRuleInput represents the input for rule creation.
type CreateCategoryRuleInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	MatchType   entity.RuleMatchType
	MatchValue  string
	Priority    *int // Optional, defaults to entity.DefaultRulePriority
}

// CreateCategoryRuleOutput represents the output of rule creation.
type CreateCategoryRuleOutput struct {
	Rule *entity.CategoryRuleWithCategory
}

// CreateCategoryRuleUseCase handles rule creation logic.
type CreateCategoryRuleUseCase struct {
	ruleRepo     adapter.CategoryRuleRepository
	categoryRepo adapter.CategoryRepository
	authorizer   *household.Authorizer
}

// NewCreateCategoryRuleUseCase creates a new CreateCategoryRuleUseCase instance.
func NewCreateCategoryRuleUseCase(
	ruleRepo adapter.CategoryRuleRepository,
	categoryRepo adapter.CategoryRepository,
	authorizer *household.Authorizer,
) *CreateCategoryRuleUseCase {
	return &CreateCategoryRuleUseCase{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		authorizer:   authorizer,
	}
}

// Execute performs the rule creation.
func (uc *CreateCategoryRuleUseCase) Execute(ctx context.Context, input CreateCategoryRuleInput) (*CreateCategoryRuleOutput, error) {
	if !input.MatchType.IsValid() {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeInvalidRuleMatchType,
			"match_type must be one of: merchant_exact, merchant_contains, description_contains",
			domainerror.ErrInvalidRuleMatchType,
		)
	}

	matchValue := strings.TrimSpace(input.MatchValue)
	if matchValue == "" {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeRuleMatchValueRequired,
			"match_value cannot be empty",
			domainerror.ErrRuleMatchValueRequired,
		)
	}
	if utf8.RuneCountInString(matchValue) > MaxMatchValueLength {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeRuleMatchValueTooLong,
			fmt.Sprintf("match_value must not exceed %d characters", MaxMatchValueLength),
			domainerror.ErrRuleMatchValueTooLong,
		)
	}

	priority := entity.DefaultRulePriority
	if input.Priority != nil {
		priority = *input.Priority
	}
	if priority < 0 {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeInvalidRulePriority,
			"priority must be zero or greater",
			domainerror.ErrInvalidRulePriority,
		)
	}

	if _, err := uc.authorizer.RequireWriter(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	rule, err := createRule(ctx, uc.ruleRepo, uc.categoryRepo, input.HouseholdID, input.CategoryID, input.MatchType, matchValue, priority)
	if err != nil {
		return nil, err
	}

	return &CreateCategoryRuleOutput{
		Rule: rule,
	}, nil
}

// createRule checks the category and the uniqueness of the match, then stores the rule.
func createRule(
	ctx context.Context,
	ruleRepo adapter.CategoryRuleRepository,
	categoryRepo adapter.CategoryRepository,
	householdID, categoryID uuid.UUID,
	matchType entity.RuleMatchType,
	matchValue string,
	priority int,
) (*entity.CategoryRuleWithCategory, error) {
	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || category.HouseholdID != householdID {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeCategoryNotFoundForRule,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	exists, err := ruleRepo.ExistsByMatch(ctx, householdID, matchType, matchValue)
	if err != nil {
		return nil, fmt.Errorf("failed to check rule existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryRuleError(
			domainerror.ErrCodeCategoryRuleExists,
			"a rule with the same match already exists",
			domainerror.ErrCategoryRuleExists,
		)
	}

	rule := entity.NewCategoryRule(householdID, categoryID, matchType, matchValue, priority)
	if err := ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create category rule: %w", err)
	}

	return &entity.CategoryRuleWithCategory{
		Rule:     rule,
		Category: category,
	}, nil
}
