package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDirection tells whether money leaves or enters an account.
type TransactionDirection string

const (
	TransactionDirectionOutflow TransactionDirection = "outflow"
	TransactionDirectionInflow  TransactionDirection = "inflow"
)

// IsValid reports whether the direction is inflow or outflow.
func (d TransactionDirection) IsValid() bool {
	return d == TransactionDirectionOutflow || d == TransactionDirectionInflow
}

// CategoryAssignment places a share of a transaction into a category.
type CategoryAssignment struct {
	CategoryID uuid.UUID
	Weight     decimal.Decimal // in [0,1]
}

// Transaction represents a single money movement on an account.
type Transaction struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal // always positive, sign comes from Direction
	Direction   TransactionDirection
	OccurredAt  time.Time
	Description string
	Merchant    string
	Currency    Currency
	Categories  []CategoryAssignment
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	householdID, accountID uuid.UUID,
	amount decimal.Decimal,
	direction TransactionDirection,
	occurredAt time.Time,
	description, merchant string,
	currency Currency,
	categories []CategoryAssignment,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		HouseholdID: householdID,
		AccountID:   accountID,
		Amount:      amount,
		Direction:   direction,
		OccurredAt:  occurredAt.UTC(),
		Description: description,
		Merchant:    merchant,
		Currency:    currency,
		Categories:  categories,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
