package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

type memberRepo struct {
	adapter.HouseholdRepository
	roles map[uuid.UUID]entity.HouseholdRole
}

func (r *memberRepo) FindMember(_ context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error) {
	role, ok := r.roles[userID]
	if !ok {
		return nil, domainerror.ErrNotHouseholdMember
	}
	return entity.NewHouseholdMember(householdID, userID, role), nil
}

type categoryRepo struct {
	adapter.CategoryRepository
	category       *entity.Category
	inTransactions bool
	inBudgets      bool
	deleted        []uuid.UUID
}

func (r *categoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if r.category == nil || r.category.ID != id {
		return nil, domainerror.ErrCategoryNotFound
	}
	return r.category, nil
}

func (r *categoryRepo) IsUsedInTransactions(context.Context, uuid.UUID) (bool, error) {
	return r.inTransactions, nil
}

func (r *categoryRepo) IsUsedInBudgets(context.Context, uuid.UUID) (bool, error) {
	return r.inBudgets, nil
}

func (r *categoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func TestDeleteCategory(t *testing.T) {
	householdID := uuid.New()
	owner, editor := uuid.New(), uuid.New()
	authorizer := household.NewAuthorizer(&memberRepo{roles: map[uuid.UUID]entity.HouseholdRole{
		owner:  entity.HouseholdRoleOwner,
		editor: entity.HouseholdRoleEditor,
	}})

	setup := func() (*categoryRepo, *DeleteCategoryUseCase) {
		repo := &categoryRepo{category: entity.NewCategory(householdID, "Takeaway", entity.CategoryKindExpense, "", "")}
		return repo, NewDeleteCategoryUseCase(repo, authorizer)
	}

	t.Run("owner deletes an unused category", func(t *testing.T) {
		repo, uc := setup()

		out, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: repo.category.ID, UserID: owner})

		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, []uuid.UUID{repo.category.ID}, repo.deleted)
	})

	t.Run("editor is not allowed", func(t *testing.T) {
		repo, uc := setup()

		_, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: repo.category.ID, UserID: editor})

		var hhErr *domainerror.HouseholdError
		require.True(t, errors.As(err, &hhErr), "expected HouseholdError, got %v", err)
		assert.Equal(t, domainerror.ErrCodeOwnerRequired, hhErr.Code)
		assert.Empty(t, repo.deleted)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, uc := setup()

		_, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: uuid.New(), UserID: owner})

		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	})

	tests := []struct {
		name           string
		inTransactions bool
		inBudgets      bool
		code           domainerror.CategoryErrorCode
	}{
		{name: "used in transactions", inTransactions: true, code: domainerror.ErrCodeCategoryUsedInTransactions},
		{name: "used in budgets", inBudgets: true, code: domainerror.ErrCodeCategoryUsedInBudgets},
		{name: "transactions reported first", inTransactions: true, inBudgets: true, code: domainerror.ErrCodeCategoryUsedInTransactions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, uc := setup()
			repo.inTransactions = tt.inTransactions
			repo.inBudgets = tt.inBudgets

			_, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: repo.category.ID, UserID: owner})

			var catErr *domainerror.CategoryError
			require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
			assert.Equal(t, tt.code, catErr.Code)
			assert.ErrorIs(t, err, domainerror.ErrCategoryInUse)
			assert.Empty(t, repo.deleted)
		})
	}
}
