// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByHousehold retrieves all categories of a household ordered by name.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.Category, error)

	// FindByHouseholdAndKind retrieves the categories of a household filtered by kind.
	FindByHouseholdAndKind(ctx context.Context, householdID uuid.UUID, kind entity.CategoryKind) ([]*entity.Category, error)

	// CountInHousehold counts how many of the given IDs belong to the household.
	CountInHousehold(ctx context.Context, householdID uuid.UUID, ids []uuid.UUID) (int, error)

	// ExistsByNameAndHousehold checks if a category with the given name exists in the household.
	ExistsByNameAndHousehold(ctx context.Context, name string, householdID uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// IsUsedInTransactions reports whether any transaction is assigned to the category.
	IsUsedInTransactions(ctx context.Context, id uuid.UUID) (bool, error)

	// IsUsedInBudgets reports whether any budget row references the category.
	IsUsedInBudgets(ctx context.Context, id uuid.UUID) (bool, error)
}
