package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

const (
	// DefaultListLimit is used when no limit is supplied.
	DefaultListLimit = 50
	// MaxListLimit caps the page size.
	MaxListLimit = 200
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string
	Limit       int
	Offset      int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Total        int64
	Limit        int
	Offset       int
}

// ListTransactionsUseCase handles listing household transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	authorizer      *household.Authorizer
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, authorizer *household.Authorizer) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		authorizer:      authorizer,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if _, err := uc.authorizer.RequireMember(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	if input.Offset < 0 || input.Limit < 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionFilter,
			"limit and offset must not be negative",
			nil,
		)
	}
	if input.DateFrom != nil && input.DateTo != nil && input.DateTo.Before(*input.DateFrom) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionFilter,
			"date_to must not be before date_from",
			nil,
		)
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	filter := adapter.TransactionFilter{
		HouseholdID: input.HouseholdID,
		AccountID:   input.AccountID,
		CategoryID:  input.CategoryID,
		DateFrom:    input.DateFrom,
		DateTo:      input.DateTo,
		Search:      strings.TrimSpace(input.Search),
	}

	result, err := uc.transactionRepo.FindWithFilters(ctx, filter, adapter.TransactionPagination{
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := result.Transactions
	if transactions == nil {
		transactions = []*entity.Transaction{}
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Total:        result.Total,
		Limit:        limit,
		Offset:       input.Offset,
	}, nil
}
