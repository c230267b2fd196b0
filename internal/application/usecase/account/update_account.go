package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// UpdateAccountInput represents the input for account update. Nil fields are left unchanged.
type UpdateAccountInput struct {
	AccountID      uuid.UUID
	UserID         uuid.UUID
	Name           *string
	InitialBalance *decimal.Decimal
	IsArchived     *bool
}

// UpdateAccountOutput represents the output of account update.
type UpdateAccountOutput struct {
	Account        *entity.Account
	CurrentBalance decimal.Decimal
}

// UpdateAccountUseCase handles renaming, rebalancing and archiving accounts.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
	authorizer  *household.Authorizer
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository, authorizer *household.Authorizer) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
		authorizer:  authorizer,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	account, err := findAccount(ctx, uc.accountRepo, input.AccountID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.authorizer.RequireWriter(ctx, account.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || utf8.RuneCountInString(name) > MaxAccountNameLength {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInvalidAccountName,
				fmt.Sprintf("account name must be between 1 and %d characters", MaxAccountNameLength),
				domainerror.ErrInvalidAccountName,
			)
		}
		account.Name = name
	}
	if input.InitialBalance != nil {
		account.InitialBalance = input.InitialBalance.Round(2)
	}
	if input.IsArchived != nil {
		account.IsArchived = *input.IsArchived
	}
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	balance, err := uc.accountRepo.CurrentBalance(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to compute account balance: %w", err)
	}

	return &UpdateAccountOutput{
		Account:        account,
		CurrentBalance: balance,
	}, nil
}

func findAccount(ctx context.Context, repo adapter.AccountRepository, id uuid.UUID) (*entity.Account, error) {
	account, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}
