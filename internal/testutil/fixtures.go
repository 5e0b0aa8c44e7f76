package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"casafin/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount parses a fixed-point amount literal for use in tests.
func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateTestUser creates a user with a hashed password, unique email, and
// its own household group.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserInGroup(t, db, fmt.Sprintf("group-%d", nextID()))
}

// CreateTestUserInGroup creates a user belonging to the given household group.
func CreateTestUserInGroup(t *testing.T, db *gorm.DB, groupID string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		GroupID:  groupID,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProvider creates a provider with a unique name.
func CreateTestProvider(t *testing.T, db *gorm.DB, category string) *models.Provider {
	t.Helper()

	provider := &models.Provider{
		Name:     fmt.Sprintf("Test Provider %d", nextID()),
		Category: category,
	}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("failed to create test provider: %v", err)
	}
	return provider
}

// CreateTestBill creates a bill with the given amount and due date.
func CreateTestBill(t *testing.T, db *gorm.DB, creatorID uint, amount decimal.Decimal, dueDate time.Time) *models.Bill {
	t.Helper()

	provider := CreateTestProvider(t, db, "utilities")
	bill := &models.Bill{
		Name:       fmt.Sprintf("Test Bill %d", nextID()),
		Amount:     amount,
		ProviderID: provider.ID,
		DueDate:    dueDate,
		Category:   "utilities",
		CreatorID:  creatorID,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestBudget creates a budget for the user's family in the given month.
func CreateTestBudget(t *testing.T, db *gorm.DB, creator *models.User, month time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		FamilyID:     creator.GroupID,
		Month:        models.MonthStart(month),
		TargetAmount: Amount("1000.00"),
		CreatorID:    creator.ID,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestContribution creates a contribution into the budget.
func CreateTestContribution(t *testing.T, db *gorm.DB, budgetID uint, amount decimal.Decimal) *models.Contribution {
	t.Helper()

	contribution := &models.Contribution{
		BudgetID:        budgetID,
		Amount:          amount,
		ContributorName: fmt.Sprintf("Contributor %d", nextID()),
		Kind:            models.ContributionKindManual,
		Date:            time.Now(),
	}
	if err := db.Create(contribution).Error; err != nil {
		t.Fatalf("failed to create test contribution: %v", err)
	}
	return contribution
}

// CreateTestExpense creates an expense against the budget.
func CreateTestExpense(t *testing.T, db *gorm.DB, budgetID uint, amount decimal.Decimal) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		BudgetID: budgetID,
		Amount:   amount,
		Date:     time.Now(),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestDebt creates an unpaid single-installment debt in the budget.
func CreateTestDebt(t *testing.T, db *gorm.DB, budgetID uint, amount decimal.Decimal) *models.Debt {
	t.Helper()
	return CreateTestStagedDebt(t, db, budgetID, amount, 1)
}

// CreateTestStagedDebt creates an unpaid debt with the given installment plan.
func CreateTestStagedDebt(t *testing.T, db *gorm.DB, budgetID uint, amount decimal.Decimal, installments int) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		BudgetID:          budgetID,
		Amount:            amount,
		Reason:            fmt.Sprintf("Test Debt %d", nextID()),
		InstallmentsTotal: installments,
		Frequency:         models.DebtFrequencyMonthly,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestSaving creates a saving entry in the budget.
func CreateTestSaving(t *testing.T, db *gorm.DB, budgetID uint, amount decimal.Decimal) *models.Saving {
	t.Helper()

	saving := &models.Saving{
		BudgetID: budgetID,
		Amount:   amount,
		Reason:   fmt.Sprintf("Test Saving %d", nextID()),
	}
	if err := db.Create(saving).Error; err != nil {
		t.Fatalf("failed to create test saving: %v", err)
	}
	return saving
}
