package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/domain/valueobject"
	"github.com/household-ledger/backend/internal/integration/persistence/model"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.HouseholdModel{},
		&model.HouseholdMemberModel{},
		&model.CategoryModel{},
		&model.AccountModel{},
		&model.TransactionModel{},
		&model.TransactionCategoryModel{},
		&model.BudgetPeriodModel{},
		&model.BudgetModel{},
		&model.CategoryRuleModel{},
	))
	return db
}

type ledger struct {
	ctx          context.Context
	db           *gorm.DB
	household    *entity.Household
	owner        uuid.UUID
	account      *entity.Account
	households   adapter.HouseholdRepository
	categories   adapter.CategoryRepository
	accounts     adapter.AccountRepository
	transactions adapter.TransactionRepository
	budgets      adapter.BudgetRepository
}

func newLedger(t *testing.T, now time.Time) *ledger {
	t.Helper()
	db := newTestDB(t)
	l := &ledger{
		ctx:          context.Background(),
		db:           db,
		owner:        uuid.New(),
		households:   NewHouseholdRepository(db),
		categories:   NewCategoryRepository(db),
		accounts:     NewAccountRepository(db),
		transactions: NewTransactionRepository(db),
		budgets:      NewBudgetRepository(db, fixedClock{now: now}),
	}

	l.household = entity.NewHousehold("Flat 4B", entity.Currency("GBP"), l.owner)
	require.NoError(t, l.households.CreateWithOwner(l.ctx, l.household,
		entity.NewHouseholdMember(l.household.ID, l.owner, entity.HouseholdRoleOwner)))

	l.account = entity.NewAccount(l.household.ID, "Joint", entity.AccountTypeCurrent, decimal.NewFromInt(1000), entity.Currency("GBP"))
	require.NoError(t, l.accounts.Create(l.ctx, l.account))
	return l
}

func (l *ledger) category(t *testing.T, name string, kind entity.CategoryKind) *entity.Category {
	t.Helper()
	c := entity.NewCategory(l.household.ID, name, kind, "tag", "#6366F1")
	require.NoError(t, l.categories.Create(l.ctx, c))
	return c
}

func (l *ledger) spend(t *testing.T, amount string, direction entity.TransactionDirection, at time.Time, description string, splits ...entity.CategoryAssignment) *entity.Transaction {
	t.Helper()
	txn := entity.NewTransaction(
		l.household.ID, l.account.ID,
		decimal.RequireFromString(amount), direction, at,
		description, "", entity.Currency("GBP"), splits,
	)
	require.NoError(t, l.transactions.Create(l.ctx, txn))
	return txn
}

func (l *ledger) budget(t *testing.T, month string, category *entity.Category, amount string, rollover bool) {
	t.Helper()
	period, err := l.budgets.UpsertBudgetPeriod(l.ctx, l.household.ID, mustMonth(t, month))
	require.NoError(t, err)
	require.NoError(t, l.budgets.UpsertBudgets(l.ctx, []*entity.Budget{
		entity.NewBudget(period.ID, category.ID, decimal.RequireFromString(amount), rollover),
	}))
}

func whole(id uuid.UUID) entity.CategoryAssignment {
	return entity.CategoryAssignment{CategoryID: id, Weight: decimal.NewFromInt(1)}
}

func mustMonth(t *testing.T, s string) time.Time {
	t.Helper()
	m, err := valueobject.NormalizeMonth(s)
	require.NoError(t, err)
	return m
}

func day(d int, hour int) time.Time {
	return time.Date(2025, time.September, d, hour, 0, 0, 0, time.UTC)
}

func byName(summaries []valueobject.CategorySummary) map[string]valueobject.CategorySummary {
	out := make(map[string]valueobject.CategorySummary, len(summaries))
	for _, s := range summaries {
		out[s.Category.Name] = s
	}
	return out
}

func TestBudgetRepository_GetCategorySummaryForMonth(t *testing.T) {
	l := newLedger(t, day(15, 12))
	groceries := l.category(t, "Groceries", entity.CategoryKindExpense)
	dining := l.category(t, "Dining", entity.CategoryKindExpense)
	salary := l.category(t, "Salary", entity.CategoryKindIncome)
	unused := l.category(t, "Pets", entity.CategoryKindExpense)

	l.budget(t, "2025-09", groceries, "600", true)
	l.budget(t, "2025-09", dining, "300", false)

	l.spend(t, "50.00", entity.TransactionDirectionOutflow, day(2, 9), "Market", whole(groceries.ID))
	l.spend(t, "37.50", entity.TransactionDirectionOutflow, day(9, 9), "Bakery", whole(groceries.ID))
	l.spend(t, "380.00", entity.TransactionDirectionOutflow, day(12, 20), "Anniversary dinner", whole(dining.ID))
	l.spend(t, "4200.00", entity.TransactionDirectionInflow, day(1, 8), "Payroll", whole(salary.ID))
	l.spend(t, "20.00", entity.TransactionDirectionOutflow, day(3, 10), "Cash withdrawal")
	// Outside the month on both sides.
	l.spend(t, "999.00", entity.TransactionDirectionOutflow, time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC), "August", whole(groceries.ID))
	l.spend(t, "999.00", entity.TransactionDirectionOutflow, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), "October", whole(groceries.ID))

	summaries, err := l.budgets.GetCategorySummaryForMonth(l.ctx, l.household.ID, mustMonth(t, "2025-09"))
	require.NoError(t, err)
	rows := byName(summaries)
	require.Len(t, rows, 5)

	g := rows["Groceries"]
	assert.True(t, g.Budget.Equal(decimal.NewFromInt(600)))
	assert.True(t, g.Spent.Equal(decimal.RequireFromString("87.50")), "spent %s", g.Spent)
	assert.True(t, g.Remaining.Equal(decimal.RequireFromString("512.50")))
	assert.InDelta(t, 14.58, g.BudgetPercentage, 0.001)
	assert.Equal(t, 2, g.TransactionCount)
	assert.True(t, g.RolloverEnabled)

	d := rows["Dining"]
	assert.True(t, d.Remaining.Equal(decimal.NewFromInt(-80)))
	assert.InDelta(t, 126.67, d.BudgetPercentage, 0.001)
	assert.False(t, d.RolloverEnabled)

	s := rows["Salary"]
	assert.True(t, s.Earned.Equal(decimal.NewFromInt(4200)))
	assert.True(t, s.Spent.IsZero())
	assert.Zero(t, s.BudgetPercentage)

	p := rows["Pets"]
	assert.Equal(t, unused.ID, *p.Category.ID)
	assert.Zero(t, p.TransactionCount)
	assert.True(t, p.Budget.IsZero())

	u := rows[valueobject.UncategorizedName]
	assert.Nil(t, u.Category.ID)
	assert.True(t, u.Spent.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, entity.CategoryKindExpense, u.Category.Kind)
}

func TestBudgetRepository_SplitAndDeletedCategories(t *testing.T) {
	l := newLedger(t, day(15, 12))
	groceries := l.category(t, "Groceries", entity.CategoryKindExpense)
	household := l.category(t, "Household", entity.CategoryKindExpense)
	retired := l.category(t, "Retired", entity.CategoryKindExpense)
	l.category(t, "Gone", entity.CategoryKindExpense)

	l.spend(t, "100.00", entity.TransactionDirectionOutflow, day(5, 12), "Superstore",
		entity.CategoryAssignment{CategoryID: groceries.ID, Weight: decimal.RequireFromString("0.6")},
		entity.CategoryAssignment{CategoryID: household.ID, Weight: decimal.RequireFromString("0.4")},
	)
	l.spend(t, "15.00", entity.TransactionDirectionOutflow, day(6, 12), "Old habit", whole(retired.ID))

	require.NoError(t, l.categories.Delete(l.ctx, retired.ID))
	gone, err := l.categories.FindByHousehold(l.ctx, l.household.ID)
	require.NoError(t, err)
	for _, c := range gone {
		if c.Name == "Gone" {
			require.NoError(t, l.categories.Delete(l.ctx, c.ID))
		}
	}

	summaries, err := l.budgets.GetCategorySummaryForMonth(l.ctx, l.household.ID, mustMonth(t, "2025-09"))
	require.NoError(t, err)
	rows := byName(summaries)

	assert.True(t, rows["Groceries"].Spent.Equal(decimal.NewFromInt(60)), "groceries %s", rows["Groceries"].Spent)
	assert.True(t, rows["Household"].Spent.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 1, rows["Groceries"].TransactionCount)
	assert.Contains(t, rows, "Retired")
	assert.True(t, rows["Retired"].Spent.Equal(decimal.NewFromInt(15)))
	assert.NotContains(t, rows, "Gone")
}

func TestBudgetRepository_GetBurnRateForMonth(t *testing.T) {
	l := newLedger(t, day(15, 12))
	groceries := l.category(t, "Groceries", entity.CategoryKindExpense)

	t.Run("no period and no transactions", func(t *testing.T) {
		burn, err := l.budgets.GetBurnRateForMonth(l.ctx, l.household.ID, mustMonth(t, "2025-09"))
		require.NoError(t, err)
		assert.Nil(t, burn)
	})

	t.Run("current month uses today's day", func(t *testing.T) {
		l.budget(t, "2025-09", groceries, "600", false)
		l.spend(t, "150.00", entity.TransactionDirectionOutflow, day(4, 9), "Market", whole(groceries.ID))
		l.spend(t, "500.00", entity.TransactionDirectionInflow, day(4, 9), "Refund")

		burn, err := l.budgets.GetBurnRateForMonth(l.ctx, l.household.ID, mustMonth(t, "2025-09"))
		require.NoError(t, err)
		require.NotNil(t, burn)

		assert.True(t, burn.Spent.Equal(decimal.NewFromInt(150)))
		assert.True(t, burn.Budget.Equal(decimal.NewFromInt(600)))
		assert.Equal(t, 15, burn.DayOfMonth)
		assert.Equal(t, 15, burn.RemainingDays)
		assert.True(t, burn.DailyAverage.Equal(decimal.NewFromInt(10)))
		assert.True(t, burn.ProjectedMonthlySpend.Equal(decimal.NewFromInt(300)))
		assert.True(t, burn.SuggestedDailySpend.Equal(decimal.NewFromInt(30)))
	})

	t.Run("period without transactions still reports", func(t *testing.T) {
		l.budget(t, "2025-08", groceries, "400", false)

		burn, err := l.budgets.GetBurnRateForMonth(l.ctx, l.household.ID, mustMonth(t, "2025-08"))
		require.NoError(t, err)
		require.NotNil(t, burn)
		assert.True(t, burn.Spent.IsZero())
		assert.Equal(t, 31, burn.DayOfMonth)
		assert.Zero(t, burn.RemainingDays)
		assert.True(t, burn.SuggestedDailySpend.IsZero())
	})
}

func TestBudgetRepository_GetBurnRateForMonth_IncomeBudgetsExcluded(t *testing.T) {
	l := newLedger(t, day(15, 12))
	groceries := l.category(t, "Groceries", entity.CategoryKindExpense)
	salary := l.category(t, "Salary", entity.CategoryKindIncome)

	l.budget(t, "2025-09", groceries, "300", false)
	l.budget(t, "2025-09", salary, "2500", false)
	l.spend(t, "380.00", entity.TransactionDirectionOutflow, day(10, 9), "Market", whole(groceries.ID))

	burn, err := l.budgets.GetBurnRateForMonth(l.ctx, l.household.ID, mustMonth(t, "2025-09"))
	require.NoError(t, err)
	require.NotNil(t, burn)

	assert.True(t, burn.Budget.Equal(decimal.NewFromInt(300)), "budget %s", burn.Budget)
	assert.True(t, burn.Remaining.Equal(decimal.NewFromInt(-80)), "remaining %s", burn.Remaining)
	assert.True(t, burn.SuggestedDailySpend.IsZero(), "suggested %s", burn.SuggestedDailySpend)
}

func TestBudgetRepository_Upserts(t *testing.T) {
	l := newLedger(t, day(15, 12))
	groceries := l.category(t, "Groceries", entity.CategoryKindExpense)
	oct := mustMonth(t, "2025-10")

	first, err := l.budgets.UpsertBudgetPeriod(l.ctx, l.household.ID, oct)
	require.NoError(t, err)
	second, err := l.budgets.UpsertBudgetPeriod(l.ctx, l.household.ID, oct)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Month.Equal(oct))

	require.NoError(t, l.budgets.UpsertBudgets(l.ctx, []*entity.Budget{
		entity.NewBudget(first.ID, groceries.ID, decimal.NewFromInt(400), false),
	}))
	require.NoError(t, l.budgets.UpsertBudgets(l.ctx, []*entity.Budget{
		entity.NewBudget(first.ID, groceries.ID, decimal.NewFromInt(600), true),
	}))

	budgets, err := l.budgets.FindBudgetsByPeriod(l.ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Amount.Equal(decimal.NewFromInt(600)))
	assert.True(t, budgets[0].RolloverEnabled)

	var count int64
	require.NoError(t, l.db.Model(&model.BudgetPeriodModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTransactionRepository_FindWithFilters(t *testing.T) {
	l := newLedger(t, day(15, 12))
	groceries := l.category(t, "Groceries", entity.CategoryKindExpense)

	tesco := entity.NewTransaction(l.household.ID, l.account.ID, decimal.NewFromInt(40), entity.TransactionDirectionOutflow,
		day(3, 10), "Weekly shop", "Tesco Metro", entity.Currency("GBP"), []entity.CategoryAssignment{whole(groceries.ID)})
	require.NoError(t, l.transactions.Create(l.ctx, tesco))
	l.spend(t, "12.00", entity.TransactionDirectionOutflow, day(4, 10), "Coffee")
	l.spend(t, "8.00", entity.TransactionDirectionOutflow, day(5, 10), "Coffee")

	t.Run("search matches merchant case-insensitively", func(t *testing.T) {
		result, err := l.transactions.FindWithFilters(l.ctx,
			adapter.TransactionFilter{HouseholdID: l.household.ID, Search: "tesco"},
			adapter.TransactionPagination{Limit: 10})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, tesco.ID, result.Transactions[0].ID)
		require.Len(t, result.Transactions[0].Categories, 1)
		assert.Equal(t, groceries.ID, result.Transactions[0].Categories[0].CategoryID)
	})

	t.Run("category filter and pagination", func(t *testing.T) {
		result, err := l.transactions.FindWithFilters(l.ctx,
			adapter.TransactionFilter{HouseholdID: l.household.ID, CategoryID: &groceries.ID},
			adapter.TransactionPagination{Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)

		page, err := l.transactions.FindWithFilters(l.ctx,
			adapter.TransactionFilter{HouseholdID: l.household.ID},
			adapter.TransactionPagination{Limit: 2, Offset: 0})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Total)
		require.Len(t, page.Transactions, 2)
		assert.True(t, page.Transactions[0].OccurredAt.After(page.Transactions[1].OccurredAt))
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := l.transactions.FindByID(l.ctx, tesco.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tesco Metro", found.Merchant)

		_, err = l.transactions.FindByID(l.ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})
}

func TestAccountRepository_Balances(t *testing.T) {
	l := newLedger(t, day(15, 12))
	l.spend(t, "250.00", entity.TransactionDirectionOutflow, day(2, 9), "Rent share")
	l.spend(t, "100.50", entity.TransactionDirectionInflow, day(3, 9), "Refund")

	archived := entity.NewAccount(l.household.ID, "Old card", entity.AccountTypeCredit, decimal.Zero, entity.Currency("GBP"))
	archived.IsArchived = true
	require.NoError(t, l.accounts.Create(l.ctx, archived))

	accounts, err := l.accounts.FindByHouseholdWithBalances(l.ctx, l.household.ID, false)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].CurrentBalance.Equal(decimal.RequireFromString("850.50")), "balance %s", accounts[0].CurrentBalance)

	all, err := l.accounts.FindByHouseholdWithBalances(l.ctx, l.household.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHouseholdRepository_Membership(t *testing.T) {
	l := newLedger(t, day(15, 12))

	member, err := l.households.FindMember(l.ctx, l.household.ID, l.owner)
	require.NoError(t, err)
	assert.Equal(t, entity.HouseholdRoleOwner, member.Role)

	_, err = l.households.FindMember(l.ctx, l.household.ID, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrNotHouseholdMember)

	second := entity.NewHousehold("Allotment", entity.Currency("GBP"), l.owner)
	require.NoError(t, l.households.CreateWithOwner(l.ctx, second,
		entity.NewHouseholdMember(second.ID, l.owner, entity.HouseholdRoleOwner)))

	households, err := l.households.FindByUser(l.ctx, l.owner)
	require.NoError(t, err)
	require.Len(t, households, 2)
	assert.Equal(t, "Allotment", households[0].Household.Name)
	assert.Equal(t, entity.HouseholdRoleOwner, households[1].Role)
}

func TestCategoryRepository_CountInHousehold(t *testing.T) {
	l := newLedger(t, day(15, 12))
	groceries := l.category(t, "Groceries", entity.CategoryKindExpense)

	other := newLedger(t, day(15, 12))
	foreign := other.category(t, "Foreign", entity.CategoryKindExpense)

	n, err := l.categories.CountInHousehold(l.ctx, l.household.ID, []uuid.UUID{groceries.ID, foreign.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	exists, err := l.categories.ExistsByNameAndHousehold(l.ctx, "groceries", l.household.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}
