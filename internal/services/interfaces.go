package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"casafin/internal/models"
	"casafin/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName, groupID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// ProviderServicer defines the contract for provider-related business logic.
type ProviderServicer interface {
	CreateProvider(name, category string) (*models.Provider, error)
	GetProviders(category string, page pagination.PageRequest) (*pagination.PageResponse[models.Provider], error)
	GetProviderByID(providerID uint) (*models.Provider, error)
}

// BillFilter holds optional filter parameters for listing bills.
type BillFilter struct {
	Category   *string
	ProviderID *uint
}

// BillServicer defines the contract for bill-related business logic.
type BillServicer interface {
	CreateBill(creatorID, providerID uint, name string, amount decimal.Decimal, category, description string, issueDate *time.Time, dueDate time.Time, invoiceFile string) (*models.Bill, error)
	GetBills(page pagination.PageRequest, filter BillFilter) (*pagination.PageResponse[models.Bill], error)
	GetBillByID(billID uint) (*models.Bill, error)
	UpdateBill(billID uint, name, description, invoiceFile *string, amount *decimal.Decimal, dueDate *time.Time) (*models.Bill, error)
	DeleteBill(billID uint) error
}

// PaymentServicer defines the contract for recording and listing bill payments.
type PaymentServicer interface {
	RecordBillPayment(userID, billID uint, amountPaid decimal.Decimal, paymentDate time.Time, receiptFile string, contributionID *uint) (*models.BillPayment, error)
	GetBillPayments(billID uint, page pagination.PageRequest) (*pagination.PageResponse[models.BillPayment], error)
}

// BudgetServicer defines the contract for monthly budget business logic.
type BudgetServicer interface {
	CreateBudget(creatorID uint, month time.Time, targetAmount decimal.Decimal) (*models.Budget, error)
	GetFamilyBudgets(familyID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID uint) (*models.Budget, error)
}

// ContributionServicer defines the contract for budget contributions.
type ContributionServicer interface {
	CreateContribution(budgetID uint, amount decimal.Decimal, userID *uint, contributorName, kind, note string, billID *uint) (*models.Contribution, error)
	GetBudgetContributions(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error)
}

// ExpenseServicer defines the contract for budget expenses.
type ExpenseServicer interface {
	CreateExpense(budgetID uint, amount decimal.Decimal, billID, payerID *uint, note string) (*models.Expense, error)
	GetBudgetExpenses(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
}

// DebtServicer defines the contract for budget debts and installment payments.
type DebtServicer interface {
	CreateDebt(actingUserID, budgetID uint, amount decimal.Decimal, reason string, installmentsTotal int, frequency models.DebtFrequency, startDate *time.Time, originBillID *uint) (*models.Debt, error)
	GetBudgetDebts(budgetID uint, paid *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(debtID uint) (*models.Debt, error)
	RecordInstallmentPayment(debtID uint, amount decimal.Decimal, paymentDate time.Time, note, receiptFile string) (*models.DebtPayment, error)
}

// SavingServicer defines the contract for budget savings.
type SavingServicer interface {
	CreateSaving(actingUserID, budgetID uint, amount decimal.Decimal, reason, note string, billID *uint) (*models.Saving, error)
	GetBudgetSavings(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Saving], error)
}

// MovementServicer defines the contract for the append-only budget ledger.
// Record is meant to be called inside a sibling service's database
// transaction so the movement commits or rolls back with its source entity.
// The caller provides the movement date so the ledger entry carries the same
// timestamp as the entity it mirrors; a zero date falls back to the clock.
type MovementServicer interface {
	Record(tx *gorm.DB, budgetID uint, movementType models.MovementType, amount decimal.Decimal, date time.Time, userID *uint, description string, referenceID uint, billID *uint) (*models.Movement, error)
	GetBudgetMovements(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Movement], error)
}

// BudgetSummary aggregates a budget's totals and its current surplus.
type BudgetSummary struct {
	BudgetID           uint            `json:"budget_id"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	TotalSavings       decimal.Decimal `json:"total_savings"`
	PaidDebtTotal      decimal.Decimal `json:"paid_debt_total"`
	UnpaidDebtTotal    decimal.Decimal `json:"unpaid_debt_total"`
	Surplus            decimal.Decimal `json:"surplus"`
}

// DebtPayoff records one debt fully paid during a surplus transfer.
type DebtPayoff struct {
	DebtID     uint            `json:"debt_id"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// SettlementResult describes how a budget's surplus was redistributed.
type SettlementResult struct {
	Surplus     decimal.Decimal `json:"surplus"`
	PaidToDebts decimal.Decimal `json:"paid_to_debts"`
	Saved       decimal.Decimal `json:"saved"`
	DebtPayoffs []DebtPayoff    `json:"debt_payoffs"`
	SavingID    *uint           `json:"saving_id,omitempty"`
}

// CloseMonthResult wraps a settlement with a confirmation message.
// Settlement is nil when the month closed without surplus to transfer.
type CloseMonthResult struct {
	Message    string            `json:"message"`
	Settlement *SettlementResult `json:"settlement,omitempty"`
}

// SettlementServicer defines the contract for the surplus settlement engine.
type SettlementServicer interface {
	Summarize(budgetID uint) (*BudgetSummary, error)
	TransferSurplus(budgetID, actingUserID uint) (*SettlementResult, error)
	CloseMonth(budgetID, actingUserID uint) (*CloseMonthResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
