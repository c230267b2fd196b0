package dto

import (
	"time"

	"github.com/household-ledger/backend/internal/domain/entity"
)

// CreateHouseholdRequest represents the request body for household creation.
type CreateHouseholdRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	BaseCurrency string `json:"base_currency,omitempty"`
}

// HouseholdResponse represents a household together with the caller's role.
type HouseholdResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"base_currency"`
	OwnerID      string    `json:"owner_id"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToHouseholdResponse converts a household and role to a response DTO.
func ToHouseholdResponse(h *entity.Household, role entity.HouseholdRole) HouseholdResponse {
	return HouseholdResponse{
		ID:           h.ID.String(),
		Name:         h.Name,
		BaseCurrency: string(h.BaseCurrency),
		OwnerID:      h.OwnerID.String(),
		Role:         string(role),
		CreatedAt:    h.CreatedAt,
	}
}

// ToHouseholdListResponse converts households with roles to response DTOs.
func ToHouseholdListResponse(households []*entity.HouseholdWithRole) []HouseholdResponse {
	responses := make([]HouseholdResponse, len(households))
	for i, h := range households {
		responses[i] = ToHouseholdResponse(h.Household, h.Role)
	}
	return responses
}

// AddMemberRequest represents the request body for adding a household member.
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role,omitempty"`
}

// MemberResponse represents a household membership.
type MemberResponse struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ToMemberResponse converts a membership to a response DTO.
func ToMemberResponse(m *entity.HouseholdMember) MemberResponse {
	return MemberResponse{
		ID:          m.ID.String(),
		HouseholdID: m.HouseholdID.String(),
		UserID:      m.UserID.String(),
		Role:        string(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}

// ToMemberListResponse converts memberships to response DTOs.
func ToMemberListResponse(members []*entity.HouseholdMember) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = ToMemberResponse(m)
	}
	return responses
}
