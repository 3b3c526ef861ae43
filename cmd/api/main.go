package main

import (
	"fmt"
	"os"
	"time"

	"pennywise/internal/config"
	"pennywise/internal/database"
	"pennywise/internal/handlers"
	"pennywise/internal/logger"
	"pennywise/internal/middleware"
	"pennywise/internal/services"
	"pennywise/internal/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pennywise/internal/docs" // Import swagger docs
)

// @title           Pennywise API
// @version         1.0
// @description     Pennywise is a personal budgeting service that keeps per-category budget aggregates consistent with an expense ledger and provides time-bucketed spending reports.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	budgetService := services.NewBudgetService(db)
	reportService := services.NewReportService(db)
	reconcileService := services.NewReconcileService(db, reportService)
	incomeService := services.NewIncomeService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)
	reconcileHandler := handlers.NewReconcileHandler(reconcileService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Operational routes (API key protected)
	ops := v1.Group("/ops")
	ops.Use(middleware.OpsAuthMiddleware(appConfig.OpsAPIKey))
	ops.POST("/reconcile-sweep", reconcileHandler.Sweep)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/daily", reportHandler.GetDailyTotals)
	reports.GET("/categories", reportHandler.GetCategoryTotals)
	reports.GET("/summary", reportHandler.GetSummary)

	// Income routes
	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.CreateIncome)
	incomes.GET("", incomeHandler.GetIncomes)
	incomes.GET("/:id", incomeHandler.GetIncome)
	incomes.PUT("/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/:id", incomeHandler.DeleteIncome)

	// Reconciliation routes
	protected.POST("/reconcile", reconcileHandler.ReconcileAll)
	protected.POST("/reconcile/:category", reconcileHandler.ReconcileCategory)

	// Background drift-repair sweep
	if appConfig.ReconcileInterval > 0 {
		go runReconcileSweep(reconcileService, appConfig.ReconcileInterval)
	}

	log.Infof("Starting Pennywise backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// runReconcileSweep periodically recomputes every budget from the ledger.
func runReconcileSweep(reconcileService services.ReconcileServicer, interval time.Duration) {
	log := logger.Get()
	log.Infof("Reconcile sweep enabled, interval %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		corrected, err := reconcileService.Sweep()
		if err != nil {
			log.Errorw("reconcile sweep failed", "error", err)
			continue
		}
		if corrected > 0 {
			log.Warnw("reconcile sweep repaired drift", "corrections", corrected)
		}
	}
}
