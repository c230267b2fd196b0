package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CategoryRuleModel represents the categorization_rules table in the database.
type CategoryRuleModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categorization_rules_match"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MatchType   string    `gorm:"type:varchar(25);not null;uniqueIndex:idx_categorization_rules_match"`
	MatchValue  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_categorization_rules_match"`
	Priority    int       `gorm:"not null;default:100"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the CategoryRuleModel.
func (CategoryRuleModel) TableName() string {
	return "categorization_rules"
}

// ToEntity converts a CategoryRuleModel to a domain CategoryRule entity.
func (m *CategoryRuleModel) ToEntity() *entity.CategoryRule {
	return &entity.CategoryRule{
		ID:          m.ID,
		HouseholdID: m.HouseholdID,
		CategoryID:  m.CategoryID,
		MatchType:   entity.RuleMatchType(m.MatchType),
		MatchValue:  m.MatchValue,
		Priority:    m.Priority,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a CategoryRuleModel with its preloaded Category.
func (m *CategoryRuleModel) ToEntityWithCategory() *entity.CategoryRuleWithCategory {
	result := &entity.CategoryRuleWithCategory{
		Rule: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// CategoryRuleFromEntity creates a CategoryRuleModel from a domain CategoryRule entity.
func CategoryRuleFromEntity(rule *entity.CategoryRule) *CategoryRuleModel {
	return &CategoryRuleModel{
		ID:          rule.ID,
		HouseholdID: rule.HouseholdID,
		CategoryID:  rule.CategoryID,
		MatchType:   string(rule.MatchType),
		MatchValue:  rule.MatchValue,
		Priority:    rule.Priority,
		CreatedAt:   rule.CreatedAt,
		UpdatedAt:   rule.UpdatedAt,
	}
}
