package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// HouseholdModel represents the households table in the database.
type HouseholdModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	BaseCurrency string    `gorm:"type:varchar(3);not null;default:'USD'"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the HouseholdModel.
func (HouseholdModel) TableName() string {
	return "households"
}

// ToEntity converts a HouseholdModel to a domain Household entity.
func (m *HouseholdModel) ToEntity() *entity.Household {
	return &entity.Household{
		ID:           m.ID,
		Name:         m.Name,
		BaseCurrency: entity.Currency(m.BaseCurrency),
		OwnerID:      m.OwnerID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// HouseholdFromEntity creates a HouseholdModel from a domain Household entity.
func HouseholdFromEntity(h *entity.Household) *HouseholdModel {
	return &HouseholdModel{
		ID:           h.ID,
		Name:         h.Name,
		BaseCurrency: string(h.BaseCurrency),
		OwnerID:      h.OwnerID,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

// HouseholdMemberModel represents the household_members table in the database.
type HouseholdMemberModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_household_members_household_user"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_household_members_household_user;index"`
	Role        string    `gorm:"type:varchar(10);not null"`
	JoinedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the HouseholdMemberModel.
func (HouseholdMemberModel) TableName() string {
	return "household_members"
}

// ToEntity converts a HouseholdMemberModel to a domain HouseholdMember entity.
func (m *HouseholdMemberModel) ToEntity() *entity.HouseholdMember {
	return &entity.HouseholdMember{
		ID:          m.ID,
		HouseholdID: m.HouseholdID,
		UserID:      m.UserID,
		Role:        entity.HouseholdRole(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}

// HouseholdMemberFromEntity creates a HouseholdMemberModel from a domain HouseholdMember entity.
func HouseholdMemberFromEntity(member *entity.HouseholdMember) *HouseholdMemberModel {
	return &HouseholdMemberModel{
		ID:          member.ID,
		HouseholdID: member.HouseholdID,
		UserID:      member.UserID,
		Role:        string(member.Role),
		JoinedAt:    member.JoinedAt,
	}
}
