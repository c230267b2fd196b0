// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/household-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	householdController   *controller.HouseholdController
	categoryController    *controller.CategoryController
	accountController     *controller.AccountController
	transactionController *controller.TransactionController
	budgetController      *controller.BudgetController
	ruleController        *controller.CategoryRuleController
	writeRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
	allowedOrigins        []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	householdController *controller.HouseholdController,
	categoryController *controller.CategoryController,
	accountController *controller.AccountController,
	transactionController *controller.TransactionController,
	budgetController *controller.BudgetController,
	ruleController *controller.CategoryRuleController,
	writeRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController:      healthController,
		householdController:   householdController,
		categoryController:    categoryController,
		accountController:     accountController,
		transactionController: transactionController,
		budgetController:      budgetController,
		ruleController:        ruleController,
		writeRateLimiter:      writeRateLimiter,
		authMiddleware:        authMiddleware,
		allowedOrigins:        allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every route requires authentication
// and writes are rate limited per user.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	write := []gin.HandlerFunc{}
	if r.writeRateLimiter != nil {
		write = append(write, r.writeRateLimiter.Middleware())
	}
	writes := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), h)
	}

	households := v1.Group("/households")
	{
		households.GET("", r.householdController.List)
		households.POST("", writes(r.householdController.Create)...)
		households.GET("/:id/members", r.householdController.ListMembers)
		households.POST("/:id/members", writes(r.householdController.AddMember)...)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", writes(r.categoryController.Create)...)
		categories.PATCH("/:id", writes(r.categoryController.Update)...)
		categories.DELETE("/:id", writes(r.categoryController.Delete)...)
	}

	accounts := v1.Group("/accounts")
	{
		accounts.GET("", r.accountController.List)
		accounts.POST("", writes(r.accountController.Create)...)
		accounts.PATCH("/:id", writes(r.accountController.Update)...)
		accounts.DELETE("/:id", writes(r.accountController.Delete)...)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", writes(r.transactionController.Create)...)
	}

	rules := v1.Group("/rules")
	{
		rules.GET("", r.ruleController.List)
		rules.POST("", writes(r.ruleController.Create)...)
		rules.POST("/from-transaction", writes(r.ruleController.CreateFromTransaction)...)
		rules.DELETE("/:id", writes(r.ruleController.Delete)...)
	}

	v1.GET("/category-summary", r.budgetController.GetCategorySummary)

	budgets := v1.Group("/budgets")
	{
		budgets.GET("", r.budgetController.GetMonthly)
		budgets.POST("", writes(r.budgetController.Upsert)...)
		budgets.POST("/rollover", writes(r.budgetController.Rollover)...)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
