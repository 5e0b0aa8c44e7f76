package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "casafin/internal/errors"
	"casafin/internal/models"
	"casafin/internal/pagination"
)

// expenseService handles budget expenses.
type expenseService struct {
	db        *gorm.DB
	movements MovementServicer
	now       func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, movements MovementServicer) ExpenseServicer {
	return &expenseService{db: db, movements: movements, now: time.Now}
}

// CreateExpense records a user-entered expense against a budget and appends
// the matching ledger movement in the same transaction.
func (s *expenseService) CreateExpense(
	budgetID uint,
	amount decimal.Decimal,
	billID, payerID *uint,
	note string,
) (*models.Expense, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	description := "Expense"
	if billID != nil {
		var bill models.Bill
		if err := s.db.First(&bill, *billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrBillNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		description = fmt.Sprintf("Expense on %s", bill.Name)
	}

	expense := &models.Expense{
		BudgetID: budget.ID,
		BillID:   billID,
		Amount:   amount,
		PayerID:  payerID,
		Note:     note,
		Date:     s.now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.movements.Record(tx, budget.ID, models.MovementTypeExpense,
			expense.Amount, expense.Date, payerID, description, expense.ID, billID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GetBudgetExpenses returns a paginated list of a budget's expenses.
func (s *expenseService) GetBudgetExpenses(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("budget_id = ?", budgetID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}
