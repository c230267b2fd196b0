// Package household contains household-related use cases.
package household

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// MaxHouseholdNameLength is the maximum allowed length for household names.
const MaxHouseholdNameLength = 100

// CreateHouseholdInput represents the input for household creation.
type CreateHouseholdInput struct {
	Name         string
	BaseCurrency entity.Currency // Optional, defaults to DefaultCurrency
	UserID       uuid.UUID
}

// CreateHouseholdOutput represents the output of household creation.
type CreateHouseholdOutput struct {
	Household *entity.Household
	Role      entity.HouseholdRole
}

// CreateHouseholdUseCase handles household creation logic.
type CreateHouseholdUseCase struct {
	householdRepo adapter.HouseholdRepository
}

// NewCreateHouseholdUseCase creates a new CreateHouseholdUseCase instance.
func NewCreateHouseholdUseCase(householdRepo adapter.HouseholdRepository) *CreateHouseholdUseCase {
	return &CreateHouseholdUseCase{
		householdRepo: householdRepo,
	}
}

// Execute creates the household and makes the caller its owner.
func (uc *CreateHouseholdUseCase) Execute(ctx context.Context, input CreateHouseholdInput) (*CreateHouseholdOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeHouseholdNameRequired,
			"household name is required",
			domainerror.ErrHouseholdNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxHouseholdNameLength {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeHouseholdNameTooLong,
			fmt.Sprintf("household name must not exceed %d characters", MaxHouseholdNameLength),
			domainerror.ErrHouseholdNameTooLong,
		)
	}

	currency := entity.Currency(strings.ToUpper(string(input.BaseCurrency)))
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	if !entity.IsSupportedBaseCurrency(currency) {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeUnsupportedCurrency,
			"base currency must be one of USD, GBP, EUR",
			domainerror.ErrUnsupportedCurrency,
		)
	}

	household := entity.NewHousehold(name, currency, input.UserID)
	owner := entity.NewHouseholdMember(household.ID, input.UserID, entity.HouseholdRoleOwner)

	if err := uc.householdRepo.CreateWithOwner(ctx, household, owner); err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}

	return &CreateHouseholdOutput{
		Household: household,
		Role:      owner.Role,
	}, nil
}
