package dto

import (
	"time"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateCategoryRuleRequest represents the request body for rule creation.
type CreateCategoryRuleRequest struct {
	HouseholdID string `json:"household_id" binding:"required"`
	MatchType   string `json:"match_type" binding:"required"`
	MatchValue  string `json:"match_value" binding:"required"`
	CategoryID  string `json:"category_id" binding:"required"`
	Priority    *int   `json:"priority,omitempty"`
}

// CreateRuleFromTransactionRequest represents the request body for learning a rule from a transaction.
type CreateRuleFromTransactionRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	CategoryID    string `json:"category_id" binding:"required"`
	RuleType      string `json:"rule_type" binding:"required"`
}

// CategoryRuleResponse represents a rule with the category it assigns.
type CategoryRuleResponse struct {
	ID          string            `json:"id"`
	HouseholdID string            `json:"household_id"`
	MatchType   string            `json:"match_type"`
	MatchValue  string            `json:"match_value"`
	Priority    int               `json:"priority"`
	Category    *CategoryResponse `json:"category"`
	CreatedAt   time.Time         `json:"created_at"`
}

// RuleFromTransactionResponse is the result of learning a rule from a transaction.
type RuleFromTransactionResponse struct {
	Rule                 CategoryRuleResponse `json:"rule"`
	AppliedToTransaction bool                 `json:"applied_to_transaction"`
}

// ToCategoryRuleResponse converts a rule with its category to a response DTO.
func ToCategoryRuleResponse(r *entity.CategoryRuleWithCategory) CategoryRuleResponse {
	resp := CategoryRuleResponse{
		ID:          r.Rule.ID.String(),
		HouseholdID: r.Rule.HouseholdID.String(),
		MatchType:   string(r.Rule.MatchType),
		MatchValue:  r.Rule.MatchValue,
		Priority:    r.Rule.Priority,
		CreatedAt:   r.Rule.CreatedAt,
	}
	if r.Category != nil {
		category := ToCategoryResponse(r.Category)
		resp.Category = &category
	}
	return resp
}

// ToCategoryRuleListResponse converts rules to response DTOs.
func ToCategoryRuleListResponse(rules []*entity.CategoryRuleWithCategory) []CategoryRuleResponse {
	responses := make([]CategoryRuleResponse, len(rules))
	for i, r := range rules {
		responses[i] = ToCategoryRuleResponse(r)
	}
	return responses
}
