package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_household_occurred"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Direction   string          `gorm:"type:varchar(10);not null"`
	OccurredAt  time.Time       `gorm:"not null;index:idx_transactions_household_occurred"`
	Description string          `gorm:"type:varchar(255);not null"`
	Merchant    string          `gorm:"type:varchar(255)"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Categories []TransactionCategoryModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	categories := make([]entity.CategoryAssignment, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = entity.CategoryAssignment{
			CategoryID: c.CategoryID,
			Weight:     c.Weight,
		}
	}

	return &entity.Transaction{
		ID:          m.ID,
		HouseholdID: m.HouseholdID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Direction:   entity.TransactionDirection(m.Direction),
		OccurredAt:  m.OccurredAt.UTC(),
		Description: m.Description,
		Merchant:    m.Merchant,
		Currency:    entity.Currency(m.Currency),
		Categories:  categories,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
// Category assignments are returned separately so they can be written in the same
// database transaction.
func TransactionFromEntity(t *entity.Transaction) (*TransactionModel, []TransactionCategoryModel) {
	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	}

	assignments := make([]TransactionCategoryModel, len(t.Categories))
	for i, c := range t.Categories {
		assignments[i] = TransactionCategoryModel{
			TransactionID: t.ID,
			CategoryID:    c.CategoryID,
			Weight:        c.Weight,
		}
	}

	return &TransactionModel{
		ID:          t.ID,
		HouseholdID: t.HouseholdID,
		AccountID:   t.AccountID,
		Amount:      t.Amount,
		Direction:   string(t.Direction),
		OccurredAt:  t.OccurredAt.UTC(),
		Description: t.Description,
		Merchant:    t.Merchant,
		Currency:    string(t.Currency),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DeletedAt:   deletedAt,
	}, assignments
}

// TransactionCategoryModel represents the transaction_categories table in the database.
type TransactionCategoryModel struct {
	TransactionID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;primaryKey;index"`
	Weight        decimal.Decimal `gorm:"type:decimal(5,4);not null;default:1"`
}

// TableName returns the table name for the TransactionCategoryModel.
func (TransactionCategoryModel) TableName() string {
	return "transaction_categories"
}
