package household

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// Authorizer resolves a caller's membership before household-scoped operations.
type Authorizer struct {
	householdRepo adapter.HouseholdRepository
}

// NewAuthorizer creates a new Authorizer instance.
func NewAuthorizer(householdRepo adapter.HouseholdRepository) *Authorizer {
	return &Authorizer{
		householdRepo: householdRepo,
	}
}

// RequireMember returns the caller's membership or a permission error.
func (a *Authorizer) RequireMember(ctx context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error) {
	member, err := a.householdRepo.FindMember(ctx, householdID, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotHouseholdMember) {
			return nil, domainerror.NewHouseholdError(
				domainerror.ErrCodeNotHouseholdMember,
				"you do not have access to this household",
				domainerror.ErrNotHouseholdMember,
			)
		}
		return nil, fmt.Errorf("failed to find household membership: %w", err)
	}
	return member, nil
}

// RequireWriter returns the caller's membership when the role is owner or editor.
func (a *Authorizer) RequireWriter(ctx context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error) {
	member, err := a.RequireMember(ctx, householdID, userID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanWrite() {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeInsufficientPermissions,
			"only owners and editors can modify this household",
			domainerror.ErrInsufficientPermissions,
		)
	}
	return member, nil
}

// RequireOwner returns the caller's membership when the role is owner.
func (a *Authorizer) RequireOwner(ctx context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error) {
	member, err := a.RequireMember(ctx, householdID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != entity.HouseholdRoleOwner {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeOwnerRequired,
			"only the household owner can perform this action",
			domainerror.ErrOwnerRequired,
		)
	}
	return member, nil
}
