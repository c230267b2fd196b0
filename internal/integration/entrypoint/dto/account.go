package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	HouseholdID    string          `json:"household_id" binding:"required,uuid"`
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	Type           string          `json:"type" binding:"required,oneof=cash current credit savings"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency,omitempty"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name           *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	InitialBalance *decimal.Decimal `json:"initial_balance,omitempty"`
	IsArchived     *bool            `json:"is_archived,omitempty"`
}

// DeleteAccountResponse tells whether the account was archived or removed.
type DeleteAccountResponse struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID             string    `json:"id"`
	HouseholdID    string    `json:"household_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Currency       string    `json:"currency"`
	InitialBalance float64   `json:"initial_balance"`
	CurrentBalance float64   `json:"current_balance"`
	IsArchived     bool      `json:"is_archived"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToAccountResponse converts an account and its balance to a response DTO.
func ToAccountResponse(a *entity.Account, balance decimal.Decimal) AccountResponse {
	return AccountResponse{
		ID:             a.ID.String(),
		HouseholdID:    a.HouseholdID.String(),
		Name:           a.Name,
		Type:           string(a.Type),
		Currency:       string(a.Currency),
		InitialBalance: Money(a.InitialBalance),
		CurrentBalance: Money(balance),
		IsArchived:     a.IsArchived,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAccountListResponse converts accounts with balances to response DTOs.
func ToAccountListResponse(accounts []*entity.AccountWithBalance) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(a.Account, a.CurrentBalance)
	}
	return responses
}
