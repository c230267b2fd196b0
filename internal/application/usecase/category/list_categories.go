package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	Kind        *entity.CategoryKind // Optional filter
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles listing the categories of a household.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	authorizer   *household.Authorizer
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository, authorizer *household.Authorizer) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		authorizer:   authorizer,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if _, err := uc.authorizer.RequireMember(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	var categories []*entity.Category
	var err error
	if input.Kind != nil {
		if !input.Kind.IsValid() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidCategoryKind,
				"category kind must be 'expense' or 'income'",
				domainerror.ErrInvalidCategoryKind,
			)
		}
		categories, err = uc.categoryRepo.FindByHouseholdAndKind(ctx, input.HouseholdID, *input.Kind)
	} else {
		categories, err = uc.categoryRepo.FindByHousehold(ctx, input.HouseholdID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []*entity.Category{}
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}
