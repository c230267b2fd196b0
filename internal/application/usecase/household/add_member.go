package household

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// AddMemberInput represents the input for adding a household member.
type AddMemberInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID // caller
	MemberID    uuid.UUID
	Role        entity.HouseholdRole // Optional, defaults to viewer
}

// AddMemberOutput represents the output of adding a household member.
type AddMemberOutput struct {
	Member *entity.HouseholdMember
}

// AddMemberUseCase lets the household owner grant another user a role.
type AddMemberUseCase struct {
	householdRepo adapter.HouseholdRepository
	authorizer    *Authorizer
}

// NewAddMemberUseCase creates a new AddMemberUseCase instance.
func NewAddMemberUseCase(householdRepo adapter.HouseholdRepository, authorizer *Authorizer) *AddMemberUseCase {
	return &AddMemberUseCase{
		householdRepo: householdRepo,
		authorizer:    authorizer,
	}
}

// Execute performs the member addition.
func (uc *AddMemberUseCase) Execute(ctx context.Context, input AddMemberInput) (*AddMemberOutput, error) {
	if _, err := uc.authorizer.RequireOwner(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	if input.MemberID == uuid.Nil {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeInvalidMemberUserID,
			"user_id is required",
			nil,
		)
	}

	role := entity.HouseholdRole(strings.ToLower(strings.TrimSpace(string(input.Role))))
	if role == "" {
		role = entity.HouseholdRoleViewer
	}
	if !role.IsValid() {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeInvalidMemberRole,
			"role must be 'owner', 'editor' or 'viewer'",
			domainerror.ErrInvalidMemberRole,
		)
	}

	member := entity.NewHouseholdMember(input.HouseholdID, input.MemberID, role)
	if err := uc.householdRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, domainerror.ErrMemberAlreadyExists) {
			return nil, domainerror.NewHouseholdError(
				domainerror.ErrCodeMemberAlreadyExists,
				"user is already a member of this household",
				domainerror.ErrMemberAlreadyExists,
			)
		}
		return nil, fmt.Errorf("failed to add household member: %w", err)
	}

	return &AddMemberOutput{
		Member: member,
	}, nil
}
