package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RuleMatchType selects which transaction field a rule inspects and how.
type RuleMatchType string

const (
	RuleMatchMerchantExact       RuleMatchType = "merchant_exact"
	RuleMatchMerchantContains    RuleMatchType = "merchant_contains"
	RuleMatchDescriptionContains RuleMatchType = "description_contains"
)

// IsValid reports whether the match type is known.
func (t RuleMatchType) IsValid() bool {
	switch t {
	case RuleMatchMerchantExact, RuleMatchMerchantContains, RuleMatchDescriptionContains:
		return true
	}
	return false
}

const (
	// DefaultRulePriority is used when a rule is created without a priority.
	DefaultRulePriority = 100
	// TransactionRulePriority is used for rules learned from an existing transaction.
	TransactionRulePriority = 10
)

// CategoryRule assigns a category to new transactions whose merchant or description
// matches. Lower priority values are evaluated first.
type CategoryRule struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	CategoryID  uuid.UUID
	MatchType   RuleMatchType
	MatchValue  string
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategoryRule creates a new CategoryRule entity.
func NewCategoryRule(householdID, categoryID uuid.UUID, matchType RuleMatchType, matchValue string, priority int) *CategoryRule {
	now := time.Now().UTC()

	return &CategoryRule{
		ID:          uuid.New(),
		HouseholdID: householdID,
		CategoryID:  categoryID,
		MatchType:   matchType,
		MatchValue:  matchValue,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Matches reports whether the rule applies to a transaction. Comparison ignores case.
func (r *CategoryRule) Matches(merchant, description string) bool {
	value := strings.ToLower(strings.TrimSpace(r.MatchValue))
	if value == "" {
		return false
	}
	merchant = strings.ToLower(strings.TrimSpace(merchant))

	switch r.MatchType {
	case RuleMatchMerchantExact:
		return merchant != "" && merchant == value
	case RuleMatchMerchantContains:
		return merchant != "" && strings.Contains(merchant, value)
	case RuleMatchDescriptionContains:
		return strings.Contains(strings.ToLower(description), value)
	default:
		return false
	}
}

// FirstMatchingRule returns the first rule of an already prioritized list that
// matches, or nil.
func FirstMatchingRule(rules []*CategoryRule, merchant, description string) *CategoryRule {
	for _, rule := range rules {
		if rule.Matches(merchant, description) {
			return rule
		}
	}
	return nil
}

// CategoryRuleWithCategory represents a rule with the category it assigns.
type CategoryRuleWithCategory struct {
	Rule     *CategoryRule
	Category *Category
}
