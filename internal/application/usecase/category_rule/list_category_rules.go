package categoryrule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// ListCategoryRulesInput represents the input for listing rules.
type ListCategoryRulesInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
}

// ListCategoryRulesOutput represents the output of listing rules.
type ListCategoryRulesOutput struct {
	Rules []*entity.CategoryRuleWithCategory
}

// ListCategoryRulesUseCase handles listing a household's rules in evaluation order.
type ListCategoryRulesUseCase struct {
	ruleRepo   adapter.CategoryRuleRepository
	authorizer *household.Authorizer
}

// NewListCategoryRulesUseCase creates a new ListCategoryRulesUseCase instance.
func NewListCategoryRulesUseCase(ruleRepo adapter.CategoryRuleRepository, authorizer *household.Authorizer) *ListCategoryRulesUseCase {
	return &ListCategoryRulesUseCase{
		ruleRepo:   ruleRepo,
		authorizer: authorizer,
	}
}

// Execute performs the rule listing.
func (uc *ListCategoryRulesUseCase) Execute(ctx context.Context, input ListCategoryRulesInput) (*ListCategoryRulesOutput, error) {
	if _, err := uc.authorizer.RequireMember(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	rules, err := uc.ruleRepo.FindByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category rules: %w", err)
	}
	if rules == nil {
		rules = []*entity.CategoryRuleWithCategory{}
	}

	return &ListCategoryRulesOutput{
		Rules: rules,
	}, nil
}
