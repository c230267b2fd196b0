package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

type memberRepo struct {
	roles map[uuid.UUID]entity.HouseholdRole
}

func (r *memberRepo) CreateWithOwner(context.Context, *entity.Household, *entity.HouseholdMember) error {
	return nil
}

func (r *memberRepo) FindByID(context.Context, uuid.UUID) (*entity.Household, error) {
	return nil, domainerror.ErrHouseholdNotFound
}

func (r *memberRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.HouseholdWithRole, error) {
	return nil, nil
}

func (r *memberRepo) FindMembers(context.Context, uuid.UUID) ([]*entity.HouseholdMember, error) {
	return nil, nil
}

func (r *memberRepo) AddMember(context.Context, *entity.HouseholdMember) error {
	return nil
}

func (r *memberRepo) FindMember(_ context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error) {
	role, ok := r.roles[userID]
	if !ok {
		return nil, domainerror.ErrNotHouseholdMember
	}
	return entity.NewHouseholdMember(householdID, userID, role), nil
}

type accountRepo struct {
	adapter.AccountRepository
	accounts map[uuid.UUID]*entity.Account
}

func (r *accountRepo) Create(context.Context, *entity.Account) error { return nil }

func (r *accountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domainerror.ErrAccountNotFound
	}
	return a, nil
}

func (r *accountRepo) FindByHouseholdWithBalances(context.Context, uuid.UUID, bool) ([]*entity.AccountWithBalance, error) {
	return nil, nil
}

type categoryRepo struct {
	adapter.CategoryRepository
	owned map[uuid.UUID]uuid.UUID // category -> household
}

func (r *categoryRepo) CountInHousehold(_ context.Context, householdID uuid.UUID, ids []uuid.UUID) (int, error) {
	n := 0
	for _, id := range ids {
		if r.owned[id] == householdID {
			n++
		}
	}
	return n, nil
}

type ruleRepo struct {
	adapter.CategoryRuleRepository
	rules []*entity.CategoryRule
}

func (r *ruleRepo) FindByHousehold(_ context.Context, householdID uuid.UUID) ([]*entity.CategoryRuleWithCategory, error) {
	out := make([]*entity.CategoryRuleWithCategory, 0, len(r.rules))
	for _, rule := range r.rules {
		if rule.HouseholdID == householdID {
			out = append(out, &entity.CategoryRuleWithCategory{Rule: rule})
		}
	}
	return out, nil
}

type transactionRepo struct {
	created    []*entity.Transaction
	lastFilter adapter.TransactionFilter
	lastPage   adapter.TransactionPagination
}

func (r *transactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.created = append(r.created, t)
	return nil
}

func (r *transactionRepo) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *transactionRepo) AssignCategoryIfUncategorized(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *transactionRepo) FindWithFilters(_ context.Context, filter adapter.TransactionFilter, page adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	r.lastFilter = filter
	r.lastPage = page
	return &adapter.TransactionListResult{Total: int64(len(r.created)), Limit: page.Limit, Offset: page.Offset}, nil
}

type txnFixture struct {
	householdID uuid.UUID
	editor      uuid.UUID
	viewer      uuid.UUID
	account     *entity.Account
	groceries   uuid.UUID
	supplies    uuid.UUID
	foreignCat  uuid.UUID
	txns        *transactionRepo
	rules       *ruleRepo
	create      *CreateTransactionUseCase
	list        *ListTransactionsUseCase
}

func newTxnFixture() *txnFixture {
	householdID := uuid.New()
	editor, viewer := uuid.New(), uuid.New()
	account := entity.NewAccount(householdID, "Joint", entity.AccountTypeCurrent, decimal.Zero, entity.Currency("GBP"))
	groceries, supplies, foreign := uuid.New(), uuid.New(), uuid.New()

	authorizer := household.NewAuthorizer(&memberRepo{roles: map[uuid.UUID]entity.HouseholdRole{
		editor: entity.HouseholdRoleEditor,
		viewer: entity.HouseholdRoleViewer,
	}})
	txns := &transactionRepo{}
	cats := &categoryRepo{owned: map[uuid.UUID]uuid.UUID{
		groceries: householdID,
		supplies:  householdID,
		foreign:   uuid.New(),
	}}
	accounts := &accountRepo{accounts: map[uuid.UUID]*entity.Account{account.ID: account}}
	rules := &ruleRepo{}

	return &txnFixture{
		householdID: householdID,
		editor:      editor,
		viewer:      viewer,
		account:     account,
		groceries:   groceries,
		supplies:    supplies,
		foreignCat:  foreign,
		txns:        txns,
		rules:       rules,
		create:      NewCreateTransactionUseCase(txns, accounts, cats, rules, authorizer),
		list:        NewListTransactionsUseCase(txns, authorizer),
	}
}

func (f *txnFixture) input() CreateTransactionInput {
	return CreateTransactionInput{
		HouseholdID: f.householdID,
		UserID:      f.editor,
		AccountID:   f.account.ID,
		Amount:      decimal.RequireFromString("87.50"),
		Direction:   entity.TransactionDirectionOutflow,
		OccurredAt:  time.Date(2025, 9, 14, 18, 30, 0, 0, time.FixedZone("BST", 3600)),
		Description: "  Weekly shop  ",
		Merchant:    "Tesco",
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("stores a valid transaction in UTC with account currency", func(t *testing.T) {
		f := newTxnFixture()
		in := f.input()
		in.Categories = []entity.CategoryAssignment{{CategoryID: f.groceries, Weight: decimal.RequireFromString("0.4")}}

		out, err := f.create.Execute(context.Background(), in)

		require.NoError(t, err)
		require.Len(t, f.txns.created, 1)
		txn := out.Transaction
		assert.Equal(t, "Weekly shop", txn.Description)
		assert.Equal(t, entity.Currency("GBP"), txn.Currency)
		assert.Equal(t, time.UTC, txn.OccurredAt.Location())
		assert.Equal(t, 17, txn.OccurredAt.Hour())
		require.Len(t, txn.Categories, 1)
		assert.True(t, txn.Categories[0].Weight.Equal(decimal.NewFromInt(1)), "single weight is normalized to 1")
	})

	t.Run("accepts split weights within tolerance", func(t *testing.T) {
		f := newTxnFixture()
		in := f.input()
		third := decimal.RequireFromString("0.33335")
		in.Categories = []entity.CategoryAssignment{
			{CategoryID: f.groceries, Weight: third},
			{CategoryID: f.supplies, Weight: third.Add(third)},
		}

		_, err := f.create.Execute(context.Background(), in)

		require.NoError(t, err)
	})

	tests := []struct {
		name   string
		mutate func(f *txnFixture, in *CreateTransactionInput)
		code   domainerror.TransactionErrorCode
		target error
	}{
		{
			name:   "zero amount",
			mutate: func(_ *txnFixture, in *CreateTransactionInput) { in.Amount = decimal.Zero },
			code:   domainerror.ErrCodeInvalidTransactionAmount,
			target: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name:   "unknown direction",
			mutate: func(_ *txnFixture, in *CreateTransactionInput) { in.Direction = "sideways" },
			code:   domainerror.ErrCodeInvalidTransactionDirection,
			target: domainerror.ErrInvalidTransactionDirection,
		},
		{
			name:   "blank description",
			mutate: func(_ *txnFixture, in *CreateTransactionInput) { in.Description = "   " },
			code:   domainerror.ErrCodeDescriptionRequired,
			target: domainerror.ErrDescriptionRequired,
		},
		{
			name: "weights above one",
			mutate: func(f *txnFixture, in *CreateTransactionInput) {
				in.Categories = []entity.CategoryAssignment{
					{CategoryID: f.groceries, Weight: decimal.RequireFromString("0.6")},
					{CategoryID: f.supplies, Weight: decimal.RequireFromString("0.5")},
				}
			},
			code:   domainerror.ErrCodeInvalidCategoryWeights,
			target: domainerror.ErrInvalidCategoryWeights,
		},
		{
			name: "negative weight",
			mutate: func(f *txnFixture, in *CreateTransactionInput) {
				in.Categories = []entity.CategoryAssignment{
					{CategoryID: f.groceries, Weight: decimal.RequireFromString("-0.1")},
					{CategoryID: f.supplies, Weight: decimal.RequireFromString("0.5")},
				}
			},
			code:   domainerror.ErrCodeInvalidCategoryWeights,
			target: domainerror.ErrInvalidCategoryWeights,
		},
		{
			name: "category of another household",
			mutate: func(f *txnFixture, in *CreateTransactionInput) {
				in.Categories = []entity.CategoryAssignment{{CategoryID: f.foreignCat, Weight: decimal.NewFromInt(1)}}
			},
			code:   domainerror.ErrCodeTxnCategoryNotFound,
			target: domainerror.ErrCategoryNotInHousehold,
		},
		{
			name:   "unknown account",
			mutate: func(_ *txnFixture, in *CreateTransactionInput) { in.AccountID = uuid.New() },
			code:   domainerror.ErrCodeTxnAccountNotFound,
			target: domainerror.ErrAccountNotInHousehold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTxnFixture()
			in := f.input()
			tt.mutate(f, &in)

			_, err := f.create.Execute(context.Background(), in)

			var txnErr *domainerror.TransactionError
			require.True(t, errors.As(err, &txnErr), "expected TransactionError, got %v", err)
			assert.Equal(t, tt.code, txnErr.Code)
			assert.ErrorIs(t, err, tt.target)
			assert.Empty(t, f.txns.created)
		})
	}

	t.Run("viewer cannot create", func(t *testing.T) {
		f := newTxnFixture()
		in := f.input()
		in.UserID = f.viewer

		_, err := f.create.Execute(context.Background(), in)

		assert.ErrorIs(t, err, domainerror.ErrInsufficientPermissions)
	})
}

func TestCreateTransaction_CategoryRules(t *testing.T) {
	setup := func() *txnFixture {
		f := newTxnFixture()
		// Evaluation order as returned by the store: lowest priority value first.
		f.rules.rules = []*entity.CategoryRule{
			entity.NewCategoryRule(f.householdID, f.supplies, entity.RuleMatchMerchantExact, "tesco", entity.TransactionRulePriority),
			entity.NewCategoryRule(f.householdID, f.groceries, entity.RuleMatchMerchantContains, "tes", entity.DefaultRulePriority),
			entity.NewCategoryRule(f.householdID, f.groceries, entity.RuleMatchDescriptionContains, "weekly", entity.DefaultRulePriority),
		}
		return f
	}

	t.Run("first matching rule categorizes the whole amount", func(t *testing.T) {
		f := setup()

		out, err := f.create.Execute(context.Background(), f.input())

		require.NoError(t, err)
		require.Len(t, out.Transaction.Categories, 1)
		assert.Equal(t, f.supplies, out.Transaction.Categories[0].CategoryID)
		assert.True(t, out.Transaction.Categories[0].Weight.Equal(decimal.NewFromInt(1)))
	})

	t.Run("falls through to a contains rule", func(t *testing.T) {
		f := setup()
		in := f.input()
		in.Merchant = "Tesco Express"

		out, err := f.create.Execute(context.Background(), in)

		require.NoError(t, err)
		require.Len(t, out.Transaction.Categories, 1)
		assert.Equal(t, f.groceries, out.Transaction.Categories[0].CategoryID)
	})

	t.Run("explicit categories win", func(t *testing.T) {
		f := setup()
		in := f.input()
		in.Categories = []entity.CategoryAssignment{{CategoryID: f.supplies, Weight: decimal.NewFromInt(1)}}
		in.Merchant = "Tesco Express"

		out, err := f.create.Execute(context.Background(), in)

		require.NoError(t, err)
		require.Len(t, out.Transaction.Categories, 1)
		assert.Equal(t, f.supplies, out.Transaction.Categories[0].CategoryID)
	})

	t.Run("no merchant leaves the transaction uncategorized", func(t *testing.T) {
		f := setup()
		in := f.input()
		in.Merchant = "  "

		out, err := f.create.Execute(context.Background(), in)

		require.NoError(t, err)
		assert.Empty(t, out.Transaction.Categories)
	})

	t.Run("no matching rule", func(t *testing.T) {
		f := setup()
		in := f.input()
		in.Merchant = "Sainsbury's"
		in.Description = "Dinner"

		out, err := f.create.Execute(context.Background(), in)

		require.NoError(t, err)
		assert.Empty(t, out.Transaction.Categories)
	})
}

func TestListTransactions(t *testing.T) {
	f := newTxnFixture()

	t.Run("applies default and maximum page size", func(t *testing.T) {
		out, err := f.list.Execute(context.Background(), ListTransactionsInput{HouseholdID: f.householdID, UserID: f.viewer})
		require.NoError(t, err)
		assert.Equal(t, DefaultListLimit, out.Limit)
		assert.NotNil(t, out.Transactions)

		out, err = f.list.Execute(context.Background(), ListTransactionsInput{HouseholdID: f.householdID, UserID: f.viewer, Limit: 5000, Search: " tesco "})
		require.NoError(t, err)
		assert.Equal(t, MaxListLimit, out.Limit)
		assert.Equal(t, MaxListLimit, f.txns.lastPage.Limit)
		assert.Equal(t, "tesco", f.txns.lastFilter.Search)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		from := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, -7)

		_, err := f.list.Execute(context.Background(), ListTransactionsInput{
			HouseholdID: f.householdID,
			UserID:      f.viewer,
			DateFrom:    &from,
			DateTo:      &to,
		})

		var txnErr *domainerror.TransactionError
		require.True(t, errors.As(err, &txnErr))
		assert.Equal(t, domainerror.ErrCodeInvalidTransactionFilter, txnErr.Code)
	})

	t.Run("non member is forbidden", func(t *testing.T) {
		_, err := f.list.Execute(context.Background(), ListTransactionsInput{HouseholdID: f.householdID, UserID: uuid.New()})
		assert.ErrorIs(t, err, domainerror.ErrNotHouseholdMember)
	})
}
