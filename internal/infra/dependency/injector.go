// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/config"
	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/application/usecase/account"
	"github.com/household-ledger/backend/internal/application/usecase/budget"
	"github.com/household-ledger/backend/internal/application/usecase/category"
	categoryrule "github.com/household-ledger/backend/internal/application/usecase/category_rule"
	"github.com/household-ledger/backend/internal/application/usecase/household"
	"github.com/household-ledger/backend/internal/application/usecase/transaction"
	"github.com/household-ledger/backend/internal/infra/server/router"
	"github.com/household-ledger/backend/internal/integration/adapters"
	"github.com/household-ledger/backend/internal/integration/cache"
	"github.com/household-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/household-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService
	RateLimiter  *middleware.RateLimiter
}

// Option customizes how the injector wires dependencies.
type Option func(*options)

type options struct {
	clock adapter.Clock
}

// WithClock replaces the system clock used to resolve the current month.
func WithClock(clock adapter.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case rollovers are not guarded.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool, opts ...Option) *Injector {
	o := options{clock: adapters.NewSystemClock()}
	for _, opt := range opts {
		opt(&o)
	}
	clock := o.clock

	// Create repositories
	householdRepo := persistence.NewHouseholdRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db, clock)
	ruleRepo := persistence.NewCategoryRuleRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authorizer := household.NewAuthorizer(householdRepo)

	var rolloverGuard adapter.RolloverGuard
	var redisHealthChecker func() bool
	if redisClient != nil {
		rolloverGuard = cache.NewRedisRolloverGuard(redisClient, cfg.Rollover.GuardTTL)
		redisHealthChecker = cache.HealthChecker(redisClient)
	} else {
		rolloverGuard = cache.NewNoopRolloverGuard()
	}

	// Create household use cases
	listHouseholdsUseCase := household.NewListHouseholdsUseCase(householdRepo)
	createHouseholdUseCase := household.NewCreateHouseholdUseCase(householdRepo)
	listMembersUseCase := household.NewListMembersUseCase(householdRepo, authorizer)
	addMemberUseCase := household.NewAddMemberUseCase(householdRepo, authorizer)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, authorizer)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, authorizer)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, authorizer)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, authorizer)

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo, authorizer)
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo, authorizer)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo, authorizer)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo, authorizer)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, authorizer)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, ruleRepo, authorizer)

	// Create categorization rule use cases
	listRulesUseCase := categoryrule.NewListCategoryRulesUseCase(ruleRepo, authorizer)
	createRuleUseCase := categoryrule.NewCreateCategoryRuleUseCase(ruleRepo, categoryRepo, authorizer)
	createRuleFromTransactionUseCase := categoryrule.NewCreateRuleFromTransactionUseCase(ruleRepo, categoryRepo, transactionRepo, authorizer)
	deleteRuleUseCase := categoryrule.NewDeleteCategoryRuleUseCase(ruleRepo, authorizer)

	// Create budget use cases
	getMonthlyBudgetUseCase := budget.NewGetMonthlyBudgetUseCase(budgetRepo, categoryRepo, authorizer)
	getCategorySummaryUseCase := budget.NewGetCategorySummaryUseCase(budgetRepo, authorizer)
	upsertBudgetsUseCase := budget.NewUpsertBudgetsUseCase(budgetRepo, categoryRepo, authorizer)
	applyRolloverUseCase := budget.NewApplyRolloverUseCase(budgetRepo, rolloverGuard, authorizer)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker, redisHealthChecker)

	householdController := controller.NewHouseholdController(
		listHouseholdsUseCase,
		createHouseholdUseCase,
		listMembersUseCase,
		addMemberUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		createAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
	)

	budgetController := controller.NewBudgetController(
		getMonthlyBudgetUseCase,
		getCategorySummaryUseCase,
		upsertBudgetsUseCase,
		applyRolloverUseCase,
		clock,
	)

	ruleController := controller.NewCategoryRuleController(
		listRulesUseCase,
		createRuleUseCase,
		createRuleFromTransactionUseCase,
		deleteRuleUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var writeRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		writeRateLimiter = middleware.NewRateLimiter(100000, cfg.RateLimit.Window)
	} else {
		writeRateLimiter = middleware.NewRateLimiter(cfg.RateLimit.WriteRequests, cfg.RateLimit.Window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		householdController,
		categoryController,
		accountController,
		transactionController,
		budgetController,
		ruleController,
		writeRateLimiter,
		authMiddleware,
		cfg.CORS.AllowedOrigins,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		TokenService: tokenService,
		RateLimiter:  writeRateLimiter,
	}
}
