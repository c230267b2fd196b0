// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind represents the kind of category (expense or income).
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
)

// IsValid reports whether the kind is expense or income.
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindExpense || k == CategoryKindIncome
}

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category is a spending or income bucket owned by a household.
type Category struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Name        string
	Kind        CategoryKind
	Icon        string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the Application layer (UseCase)
// before calling this constructor.
func NewCategory(householdID uuid.UUID, name string, kind CategoryKind, icon, color string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Name:        name,
		Kind:        kind,
		Icon:        icon,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
