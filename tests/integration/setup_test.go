package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"casafin/internal/handlers"
	"casafin/internal/logger"
	"casafin/internal/middleware"
	"casafin/internal/models"
	"casafin/internal/services"
	"casafin/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Provider{},
		&models.Bill{},
		&models.BillPayment{},
		&models.Budget{},
		&models.Contribution{},
		&models.Expense{},
		&models.Debt{},
		&models.DebtPayment{},
		&models.Saving{},
		&models.Movement{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
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

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	providerHandler := handlers.NewProviderHandler(providerService, auditService)
	billHandler := handlers.NewBillHandler(billService, paymentService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, movementService, settlementService, auditService)
	contributionHandler := handlers.NewContributionHandler(contributionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	debtHandler := handlers.NewDebtHandler(debtService, auditService)
	savingHandler := handlers.NewSavingHandler(savingService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	providers := protected.Group("/providers")
	providers.POST("", providerHandler.CreateProvider)
	providers.GET("", providerHandler.GetProviders)

	bills := protected.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.GetBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.POST("/:id/payments", billHandler.RecordPayment)
	bills.GET("/:id/payments", billHandler.GetPayments)

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

	debts := protected.Group("/debts")
	debts.GET("/:id", debtHandler.GetDebt)
	debts.POST("/:id/payments", debtHandler.RecordInstallment)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token, user ID, and household group.
func (app *testApp) registerUser(t *testing.T, email, password, groupID string) (token string, userID float64, gotGroup string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"display_name":"Test User","group_id":%q}`, email, password, groupID)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64), user["group_id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}
