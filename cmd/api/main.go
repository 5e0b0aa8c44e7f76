package main

import (
	"fmt"
	"net/http"
	"os"

	"casafin/internal/config"
	"casafin/internal/database"
	"casafin/internal/handlers"
	"casafin/internal/logger"
	"casafin/internal/middleware"
	"casafin/internal/services"
	"casafin/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "casafin/internal/docs" // Import swagger docs
)

// @title           Casafin API
// @version         1.0
// @description     Casafin tracks a household's shared finances: bills and their payments, and monthly budgets with contributions, expenses, debts, and savings.
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

	// Register custom binding rules
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	providerService := services.NewProviderService(db)
	billService := services.NewBillService(db)
	paymentService := services.NewPaymentService(db)
	budgetService := services.NewBudgetService(db, userService)
	movementService := services.NewMovementService(db)
	contributionService := services.NewContributionService(db, movementService)
	expenseService := services.NewExpenseService(db, movementService)
	debtService := services.NewDebtService(db, movementService)
	savingService := services.NewSavingService(db, movementService)
	settlementService := services.NewSettlementService(db, movementService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	providerHandler := handlers.NewProviderHandler(providerService, auditService)
	billHandler := handlers.NewBillHandler(billService, paymentService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, movementService, settlementService, auditService)
	contributionHandler := handlers.NewContributionHandler(contributionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	debtHandler := handlers.NewDebtHandler(debtService, auditService)
	savingHandler := handlers.NewSavingHandler(savingService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Provider routes
	providers := protected.Group("/providers")
	providers.POST("", providerHandler.CreateProvider)
	providers.GET("", providerHandler.GetProviders)

	// Bill routes
	bills := protected.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.GetBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.POST("/:id/payments", billHandler.RecordPayment)
	bills.GET("/:id/payments", billHandler.GetPayments)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.GET("/:id/summary", budgetHandler.GetSummary)
	budgets.GET("/:id/movements", budgetHandler.GetMovements)
	budgets.POST("/:id/transfer-surplus", budgetHandler.TransferSurplus)
	budgets.POST("/:id/close-month", budgetHandler.CloseMonth)
	budgets.POST("/:id/contributions", contributionHandler.CreateContribution)
	budgets.GET("/:id/contributions", contributionHandler.GetContributions)
	budgets.POST("/:id/expenses", expenseHandler.CreateExpense)
	budgets.GET("/:id/expenses", expenseHandler.GetExpenses)
	budgets.POST("/:id/debts", debtHandler.CreateDebt)
	budgets.GET("/:id/debts", debtHandler.GetDebts)
	budgets.POST("/:id/savings", savingHandler.CreateSaving)
	budgets.GET("/:id/savings", savingHandler.GetSavings)

	// Debt routes
	debts := protected.Group("/debts")
	debts.GET("/:id", debtHandler.GetDebt)
	debts.POST("/:id/payments", debtHandler.RecordInstallment)

	log.Infof("Starting Casafin backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
