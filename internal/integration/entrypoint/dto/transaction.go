package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/usecase/transaction"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// TransactionCategoryRequest assigns a share of a transaction to a category.
type TransactionCategoryRequest struct {
	CategoryID string          `json:"category_id" binding:"required,uuid"`
	Weight     decimal.Decimal `json:"weight"`
}

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	HouseholdID string                       `json:"household_id" binding:"required,uuid"`
	AccountID   string                       `json:"account_id" binding:"required,uuid"`
	Amount      decimal.Decimal              `json:"amount"`
	Direction   string                       `json:"direction" binding:"required,oneof=inflow outflow"`
	OccurredAt  string                       `json:"occurred_at" binding:"required"`
	Description string                       `json:"description" binding:"required,min=1,max=255"`
	Merchant    string                       `json:"merchant,omitempty"`
	Currency    string                       `json:"currency,omitempty"`
	Categories  []TransactionCategoryRequest `json:"categories,omitempty" binding:"omitempty,dive"`
}

// TransactionCategoryResponse represents a category share in transaction responses.
type TransactionCategoryResponse struct {
	CategoryID string  `json:"category_id"`
	Weight     float64 `json:"weight"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                        `json:"id"`
	HouseholdID string                        `json:"household_id"`
	AccountID   string                        `json:"account_id"`
	Amount      float64                       `json:"amount"`
	Direction   string                        `json:"direction"`
	OccurredAt  time.Time                     `json:"occurred_at"`
	Description string                        `json:"description"`
	Merchant    string                        `json:"merchant"`
	Currency    string                        `json:"currency"`
	Categories  []TransactionCategoryResponse `json:"categories"`
	CreatedAt   time.Time                     `json:"created_at"`
}

// TransactionListResponse represents a page of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// PaginationResponse describes the returned page.
type PaginationResponse struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	categories := make([]TransactionCategoryResponse, len(t.Categories))
	for i, c := range t.Categories {
		w, _ := c.Weight.Round(4).Float64()
		categories[i] = TransactionCategoryResponse{
			CategoryID: c.CategoryID.String(),
			Weight:     w,
		}
	}

	return TransactionResponse{
		ID:          t.ID.String(),
		HouseholdID: t.HouseholdID.String(),
		AccountID:   t.AccountID.String(),
		Amount:      Money(t.Amount),
		Direction:   string(t.Direction),
		OccurredAt:  t.OccurredAt,
		Description: t.Description,
		Merchant:    t.Merchant,
		Currency:    string(t.Currency),
		Categories:  categories,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, t := range output.Transactions {
		transactions[i] = ToTransactionResponse(t)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: PaginationResponse{
			Total:  output.Total,
			Limit:  output.Limit,
			Offset: output.Offset,
		},
	}
}
