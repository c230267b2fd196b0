package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
)

// DeleteAccountInput represents the input for account removal.
type DeleteAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// DeleteAccountOutput reports whether the account was archived instead of removed.
type DeleteAccountOutput struct {
	Archived bool
}

// DeleteAccountUseCase removes an account, or archives it when transactions
// still reference it.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
	authorizer  *household.Authorizer
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository, authorizer *household.Authorizer) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo: accountRepo,
		authorizer:  authorizer,
	}
}

// Execute performs the account removal. Only the household owner may remove accounts.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	account, err := findAccount(ctx, uc.accountRepo, input.AccountID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.authorizer.RequireOwner(ctx, account.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	used, err := uc.accountRepo.HasTransactions(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check account transactions: %w", err)
	}

	if used {
		account.IsArchived = true
		account.UpdatedAt = time.Now().UTC()
		if err := uc.accountRepo.Update(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to archive account: %w", err)
		}
		return &DeleteAccountOutput{Archived: true}, nil
	}

	if err := uc.accountRepo.Delete(ctx, account.ID); err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}
	return &DeleteAccountOutput{Archived: false}, nil
}
