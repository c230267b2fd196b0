package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name           string          `gorm:"type:varchar(100);not null"`
	Type           string          `gorm:"type:varchar(10);not null"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'USD'"`
	IsArchived     bool            `gorm:"not null;default:false"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:             m.ID,
		HouseholdID:    m.HouseholdID,
		Name:           m.Name,
		Type:           entity.AccountType(m.Type),
		InitialBalance: m.InitialBalance,
		Currency:       entity.Currency(m.Currency),
		IsArchived:     m.IsArchived,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:             account.ID,
		HouseholdID:    account.HouseholdID,
		Name:           account.Name,
		Type:           string(account.Type),
		InitialBalance: account.InitialBalance,
		Currency:       string(account.Currency),
		IsArchived:     account.IsArchived,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}
