package categoryrule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// DeleteCategoryRuleInput represents the input for rule deletion.
type DeleteCategoryRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// DeleteCategoryRuleUseCase handles rule deletion logic.
type DeleteCategoryRuleUseCase struct {
	ruleRepo   adapter.CategoryRuleRepository
	authorizer *household.Authorizer
}

// NewDeleteCategoryRuleUseCase creates a new DeleteCategoryRuleUseCase instance.
func NewDeleteCategoryRuleUseCase(ruleRepo adapter.CategoryRuleRepository, authorizer *household.Authorizer) *DeleteCategoryRuleUseCase {
	return &DeleteCategoryRuleUseCase{
		ruleRepo:   ruleRepo,
		authorizer: authorizer,
	}
}

// Execute performs the rule deletion.
func (uc *DeleteCategoryRuleUseCase) Execute(ctx context.Context, input DeleteCategoryRuleInput) error {
	rule, err := uc.ruleRepo.FindByID(ctx, input.RuleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryRuleNotFound) {
			return ruleNotFound()
		}
		return fmt.Errorf("failed to find category rule: %w", err)
	}

	if _, err := uc.authorizer.RequireWriter(ctx, rule.HouseholdID, input.UserID); err != nil {
		return err
	}

	if err := uc.ruleRepo.Delete(ctx, rule.ID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryRuleNotFound) {
			return ruleNotFound()
		}
		return fmt.Errorf("failed to delete category rule: %w", err)
	}
	return nil
}

func ruleNotFound() error {
	return domainerror.NewCategoryRuleError(
		domainerror.ErrCodeCategoryRuleNotFound,
		"category rule not found",
		domainerror.ErrCategoryRuleNotFound,
	)
}
