package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByHouseholdWithBalances retrieves the household's accounts with their
	// current balance (initial balance plus inflows minus outflows).
	FindByHouseholdWithBalances(ctx context.Context, householdID uuid.UUID, includeArchived bool) ([]*entity.AccountWithBalance, error)

	// CurrentBalance returns the initial balance plus inflows minus outflows of one account.
	CurrentBalance(ctx context.Context, account *entity.Account) (decimal.Decimal, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// HasTransactions reports whether any transaction, deleted or not, references the account.
	HasTransactions(ctx context.Context, id uuid.UUID) (bool, error)

	// Delete permanently removes an account.
	Delete(ctx context.Context, id uuid.UUID) error
}
