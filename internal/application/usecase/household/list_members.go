package household

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// ListMembersInput represents the input for listing household members.
type ListMembersInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
}

// ListMembersOutput represents the output of listing household members.
type ListMembersOutput struct {
	Members []*entity.HouseholdMember
}

// ListMembersUseCase lists the memberships of a household to any of its members.
type ListMembersUseCase struct {
	householdRepo adapter.HouseholdRepository
	authorizer    *Authorizer
}

// NewListMembersUseCase creates a new ListMembersUseCase instance.
func NewListMembersUseCase(householdRepo adapter.HouseholdRepository, authorizer *Authorizer) *ListMembersUseCase {
	return &ListMembersUseCase{
		householdRepo: householdRepo,
		authorizer:    authorizer,
	}
}

// Execute performs the member listing.
func (uc *ListMembersUseCase) Execute(ctx context.Context, input ListMembersInput) (*ListMembersOutput, error) {
	if _, err := uc.authorizer.RequireMember(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	members, err := uc.householdRepo.FindMembers(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list household members: %w", err)
	}
	if members == nil {
		members = []*entity.HouseholdMember{}
	}

	return &ListMembersOutput{
		Members: members,
	}, nil
}
