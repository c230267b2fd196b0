package entity

import (
	"time"

	"github.com/google/uuid"
)

// Currency is an ISO 4217 currency code.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// DefaultCurrency is used when a household or account is created without one.
const DefaultCurrency = CurrencyUSD

// IsSupportedBaseCurrency reports whether c may be used as a household base currency.
func IsSupportedBaseCurrency(c Currency) bool {
	return c == CurrencyUSD || c == CurrencyGBP || c == CurrencyEUR
}

// HouseholdRole represents the role of a member in a household.
type HouseholdRole string

const (
	HouseholdRoleOwner  HouseholdRole = "owner"
	HouseholdRoleEditor HouseholdRole = "editor"
	HouseholdRoleViewer HouseholdRole = "viewer"
)

// IsValid checks if the role is one of the known membership roles.
func (r HouseholdRole) IsValid() bool {
	switch r {
	case HouseholdRoleOwner, HouseholdRoleEditor, HouseholdRoleViewer:
		return true
	}
	return false
}

// CanWrite reports whether the role may modify household data.
func (r HouseholdRole) CanWrite() bool {
	return r == HouseholdRoleOwner || r == HouseholdRoleEditor
}

// Household is the ownership boundary for all financial data.
type Household struct {
	ID           uuid.UUID
	Name         string
	BaseCurrency Currency
	OwnerID      uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewHousehold creates a new Household entity.
func NewHousehold(name string, baseCurrency Currency, ownerID uuid.UUID) *Household {
	now := time.Now().UTC()

	return &Household{
		ID:           uuid.New(),
		Name:         name,
		BaseCurrency: baseCurrency,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HouseholdMember links a user to a household with a role.
type HouseholdMember struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	UserID      uuid.UUID
	Role        HouseholdRole
	JoinedAt    time.Time
}

// NewHouseholdMember creates a new HouseholdMember entity.
func NewHouseholdMember(householdID, userID uuid.UUID, role HouseholdRole) *HouseholdMember {
	return &HouseholdMember{
		ID:          uuid.New(),
		HouseholdID: householdID,
		UserID:      userID,
		Role:        role,
		JoinedAt:    time.Now().UTC(),
	}
}

// HouseholdWithRole is a household as seen by one of its members.
type HouseholdWithRole struct {
	Household *Household
	Role      HouseholdRole
}
