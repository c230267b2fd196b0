package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CategoryRuleRepository defines the interface for categorization rule persistence.
type CategoryRuleRepository interface {
	// Create creates a new rule in the database.
	Create(ctx context.Context, rule *entity.CategoryRule) error

	// FindByID retrieves a rule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error)

	// FindByHousehold retrieves the household's rules whose category is still live,
	// ordered by priority ascending then newest first.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CategoryRuleWithCategory, error)

	// ExistsByMatch checks if the household already has a rule with the same match.
	ExistsByMatch(ctx context.Context, householdID uuid.UUID, matchType entity.RuleMatchType, matchValue string) (bool, error)

	// Delete removes a rule from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
