package household

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// ListHouseholdsInput represents the input for listing households.
type ListHouseholdsInput struct {
	UserID uuid.UUID
}

// ListHouseholdsOutput represents the output of listing households.
type ListHouseholdsOutput struct {
	Households []*entity.HouseholdWithRole
}

// ListHouseholdsUseCase handles listing the households a user belongs to.
type ListHouseholdsUseCase struct {
	householdRepo adapter.HouseholdRepository
}

// NewListHouseholdsUseCase creates a new ListHouseholdsUseCase instance.
func NewListHouseholdsUseCase(householdRepo adapter.HouseholdRepository) *ListHouseholdsUseCase {
	return &ListHouseholdsUseCase{
		householdRepo: householdRepo,
	}
}

// Execute performs the household listing.
func (uc *ListHouseholdsUseCase) Execute(ctx context.Context, input ListHouseholdsInput) (*ListHouseholdsOutput, error) {
	households, err := uc.householdRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	if households == nil {
		households = []*entity.HouseholdWithRole{}
	}

	return &ListHouseholdsOutput{
		Households: households,
	}, nil
}
