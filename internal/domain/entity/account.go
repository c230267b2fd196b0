package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of account money moves through.
type AccountType string

const (
	AccountTypeCash    AccountType = "cash"
	AccountTypeCurrent AccountType = "current"
	AccountTypeCredit  AccountType = "credit"
	AccountTypeSavings AccountType = "savings"
)

// IsValid reports whether the account type is supported.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCash, AccountTypeCurrent, AccountTypeCredit, AccountTypeSavings:
		return true
	}
	return false
}

// Account is a household money container such as a bank account or wallet.
type Account struct {
	ID             uuid.UUID
	HouseholdID    uuid.UUID
	Name           string
	Type           AccountType
	InitialBalance decimal.Decimal
	Currency       Currency
	IsArchived     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(householdID uuid.UUID, name string, accountType AccountType, initialBalance decimal.Decimal, currency Currency) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:             uuid.New(),
		HouseholdID:    householdID,
		Name:           name,
		Type:           accountType,
		InitialBalance: initialBalance,
		Currency:       currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AccountWithBalance is an account together with its current balance.
type AccountWithBalance struct {
	Account        *Account
	CurrentBalance decimal.Decimal
}
