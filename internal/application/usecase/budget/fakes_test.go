package budget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/household-ledger/backend/internal/domain/entity"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/domain/valueobject"
)

type fakeHouseholdRepo struct {
	members map[uuid.UUID]entity.HouseholdRole
}

func (f *fakeHouseholdRepo) CreateWithOwner(context.Context, *entity.Household, *entity.HouseholdMember) error {
	return nil
}

func (f *fakeHouseholdRepo) FindByID(context.Context, uuid.UUID) (*entity.Household, error) {
	return nil, domainerror.ErrHouseholdNotFound
}

func (f *fakeHouseholdRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.HouseholdWithRole, error) {
	return nil, nil
}

func (f *fakeHouseholdRepo) FindMembers(context.Context, uuid.UUID) ([]*entity.HouseholdMember, error) {
	return nil, nil
}

func (f *fakeHouseholdRepo) AddMember(context.Context, *entity.HouseholdMember) error {
	return nil
}

func (f *fakeHouseholdRepo) FindMember(_ context.Context, householdID, userID uuid.UUID) (*entity.HouseholdMember, error) {
	role, ok := f.members[userID]
	if !ok {
		return nil, domainerror.ErrNotHouseholdMember
	}
	return entity.NewHouseholdMember(householdID, userID, role), nil
}

type fakeCategoryRepo struct {
	categories []*entity.Category
	err        error
}

func (f *fakeCategoryRepo) Create(context.Context, *entity.Category) error { return nil }

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) FindByHousehold(_ context.Context, householdID uuid.UUID) ([]*entity.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Category
	for _, c := range f.categories {
		if c.HouseholdID == householdID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindByHouseholdAndKind(ctx context.Context, householdID uuid.UUID, kind entity.CategoryKind) ([]*entity.Category, error) {
	all, err := f.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	var out []*entity.Category
	for _, c := range all {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) CountInHousehold(_ context.Context, householdID uuid.UUID, ids []uuid.UUID) (int, error) {
	n := 0
	for _, id := range ids {
		for _, c := range f.categories {
			if c.ID == id && c.HouseholdID == householdID {
				n++
				break
			}
		}
	}
	return n, nil
}

func (f *fakeCategoryRepo) ExistsByNameAndHousehold(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeCategoryRepo) Update(context.Context, *entity.Category) error { return nil }

func (f *fakeCategoryRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeCategoryRepo) IsUsedInTransactions(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeCategoryRepo) IsUsedInBudgets(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

// fakeBudgetRepo keeps periods and budgets in memory and serves canned summaries.
type fakeBudgetRepo struct {
	mu         sync.Mutex
	summaries  map[time.Time][]valueobject.CategorySummary
	burnRate   *valueobject.BurnRate
	periods    map[time.Time]*entity.BudgetPeriod
	budgets    map[uuid.UUID]map[uuid.UUID]*entity.Budget
	summaryErr error
	upsertErr  error
	calls      []string
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{
		summaries: make(map[time.Time][]valueobject.CategorySummary),
		periods:   make(map[time.Time]*entity.BudgetPeriod),
		budgets:   make(map[uuid.UUID]map[uuid.UUID]*entity.Budget),
	}
}

func (f *fakeBudgetRepo) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBudgetRepo) GetCategorySummaryForMonth(_ context.Context, _ uuid.UUID, month time.Time) ([]valueobject.CategorySummary, error) {
	f.record("summary")
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	src := f.summaries[month]
	out := make([]valueobject.CategorySummary, len(src))
	copy(out, src)
	return out, nil
}

func (f *fakeBudgetRepo) GetBurnRateForMonth(context.Context, uuid.UUID, time.Time) (*valueobject.BurnRate, error) {
	f.record("burn_rate")
	return f.burnRate, nil
}

func (f *fakeBudgetRepo) UpsertBudgetPeriod(_ context.Context, householdID uuid.UUID, month time.Time) (*entity.BudgetPeriod, error) {
	f.record("upsert_period")
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.periods[month]; ok {
		return p, nil
	}
	p := &entity.BudgetPeriod{ID: uuid.New(), HouseholdID: householdID, Month: month, CreatedAt: time.Now().UTC()}
	f.periods[month] = p
	return p, nil
}

func (f *fakeBudgetRepo) FindBudgetsByPeriod(_ context.Context, periodID uuid.UUID) ([]*entity.Budget, error) {
	f.record("find_budgets")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Budget
	for _, b := range f.budgets[periodID] {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBudgetRepo) UpsertBudgets(_ context.Context, budgets []*entity.Budget) error {
	f.record("upsert_budgets")
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range budgets {
		if f.budgets[b.PeriodID] == nil {
			f.budgets[b.PeriodID] = make(map[uuid.UUID]*entity.Budget)
		}
		f.budgets[b.PeriodID][b.CategoryID] = b
	}
	return nil
}

func (f *fakeBudgetRepo) amountFor(month time.Time, categoryID uuid.UUID) (decimal.Decimal, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.periods[month]
	if !ok {
		return decimal.Zero, false
	}
	b, ok := f.budgets[p.ID][categoryID]
	if !ok {
		return decimal.Zero, false
	}
	return b.Amount, true
}

type fakeGuard struct {
	held     map[string]bool
	released int
	err      error
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{held: make(map[string]bool)}
}

func (g *fakeGuard) key(householdID uuid.UUID, from, to time.Time) string {
	return householdID.String() + monthPair(from, to)
}

func (g *fakeGuard) Acquire(_ context.Context, householdID uuid.UUID, from, to time.Time) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	k := g.key(householdID, from, to)
	if g.held[k] {
		return false, nil
	}
	g.held[k] = true
	return true, nil
}

func (g *fakeGuard) Release(_ context.Context, householdID uuid.UUID, from, to time.Time) error {
	g.released++
	delete(g.held, g.key(householdID, from, to))
	return nil
}

var errStore = errors.New("store unavailable")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustMonth(s string) time.Time {
	m, err := valueobject.NormalizeMonth(s)
	if err != nil {
		panic(err)
	}
	return m
}

func summaryFor(c *entity.Category, budget, spent string, rollover bool) valueobject.CategorySummary {
	return valueobject.ComputeCategorySummary(
		valueobject.CategoryRefFromEntity(c),
		dec(budget), dec(spent), decimal.Zero, 1, rollover,
	)
}
