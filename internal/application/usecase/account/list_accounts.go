package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	HouseholdID     uuid.UUID
	UserID          uuid.UUID
	IncludeArchived bool
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*entity.AccountWithBalance
}

// ListAccountsUseCase handles listing the accounts of a household.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
	authorizer  *household.Authorizer
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository, authorizer *household.Authorizer) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
		authorizer:  authorizer,
	}
}

// Execute performs the account listing.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	if _, err := uc.authorizer.RequireMember(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	accounts, err := uc.accountRepo.FindByHouseholdWithBalances(ctx, input.HouseholdID, input.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []*entity.AccountWithBalance{}
	}

	return &ListAccountsOutput{
		Accounts: accounts,
	}, nil
}
