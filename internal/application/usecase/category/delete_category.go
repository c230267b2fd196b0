package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	authorizer   *household.Authorizer
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, authorizer *household.Authorizer) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		authorizer:   authorizer,
	}
}

// Execute performs the category deletion. Only the owner may delete, and only a
// category that no transaction or budget references.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := findCategory(ctx, uc.categoryRepo, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.authorizer.RequireOwner(ctx, category.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	used, err := uc.categoryRepo.IsUsedInTransactions(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category transactions: %w", err)
	}
	if used {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryUsedInTransactions,
			"cannot delete category that is used in transactions",
			domainerror.ErrCategoryInUse,
		)
	}

	used, err = uc.categoryRepo.IsUsedInBudgets(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category budgets: %w", err)
	}
	if used {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryUsedInBudgets,
			"cannot delete category that is used in budgets",
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}
