// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	HouseholdID    uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           entity.AccountType
	InitialBalance decimal.Decimal
	Currency       entity.Currency // Optional, defaults to DefaultCurrency
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
	authorizer  *household.Authorizer
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository, authorizer *household.Authorizer) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
		authorizer:  authorizer,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if _, err := uc.authorizer.RequireWriter(ctx, input.HouseholdID, input.UserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxAccountNameLength {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountName,
			fmt.Sprintf("account name must be between 1 and %d characters", MaxAccountNameLength),
			domainerror.ErrInvalidAccountName,
		)
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be one of cash, current, credit, savings",
			domainerror.ErrInvalidAccountType,
		)
	}

	currency := entity.Currency(strings.ToUpper(string(input.Currency)))
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	if !currencyCodeRegex.MatchString(string(currency)) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountCurrency,
			"currency must be a 3-letter ISO code",
			domainerror.ErrInvalidAccountCurrency,
		)
	}

	account := entity.NewAccount(input.HouseholdID, name, input.Type, input.InitialBalance.Round(2), currency)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{
		Account: account,
	}, nil
}
