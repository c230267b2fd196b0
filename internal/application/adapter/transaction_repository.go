package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	HouseholdID uuid.UUID
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string // Case-insensitive description or merchant match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Limit  int
	Offset int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Limit        int
	Offset       int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create stores a transaction together with its category assignments.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction with its category assignments.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// AssignCategoryIfUncategorized assigns the category with weight 1 when the
	// transaction has no category yet, and reports whether it did.
	AssignCategoryIfUncategorized(ctx context.Context, transactionID, categoryID uuid.UUID) (bool, error)

	// FindWithFilters retrieves transactions matching the filter, newest first.
	FindWithFilters(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)
}
