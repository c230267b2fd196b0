package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// HouseholdRepository defines the interface for household and membership persistence.
type HouseholdRepository interface {
	// CreateWithOwner stores a household and its owner membership atomically.
	CreateWithOwner(ctx context.Context, household *entity.Household, owner *entity.HouseholdMember) error

	// FindByID retrieves a household by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Household, error)

	// FindByUser retrieves every household the user belongs to with the user's role.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.HouseholdWithRole, error)

	// FindMember retrieves the membership of a user in a household.
	// Returns ErrNotHouseholdMember when the user has no membership.
	FindMember(ctx context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error)

	// FindMembers retrieves every membership of a household ordered by join time.
	FindMembers(ctx context.Context, householdID uuid.UUID) ([]*entity.HouseholdMember, error)

	// AddMember stores a new membership.
	// Returns ErrMemberAlreadyExists when the user already belongs to the household.
	AddMember(ctx context.Context, member *entity.HouseholdMember) error
}
