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

// paymentService records bill payments and links them to the monthly budget.
type paymentService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB) PaymentServicer {
	return &paymentService{db: db, now: time.Now}
}

// RecordBillPayment validates and persists a payment against a bill, then
// links it to the budget of the bill's due month: if such a budget exists,
// a matching expense is created in the same transaction. The linked expense
// does not produce a ledger movement; only user-facing expense creation does.
func (s *paymentService) RecordBillPayment(
	userID, billID uint,
	amountPaid decimal.Decimal,
	paymentDate time.Time,
	receiptFile string,
	contributionID *uint,
) (*models.BillPayment, error) {
	if !amountPaid.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount paid must be greater than zero")
	}

	var bill models.Bill
	if err := s.db.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Validated before anything is written.
	if amountPaid.GreaterThan(bill.Amount) {
		return nil, apperrors.ErrPaymentExceedsBill
	}

	if paymentDate.IsZero() {
		paymentDate = s.now()
	}

	payment := &models.BillPayment{
		BillID:         bill.ID,
		AmountPaid:     amountPaid,
		PaymentDate:    paymentDate,
		ReceiptFile:    receiptFile,
		UserID:         userID,
		ContributionID: contributionID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.linkExpense(tx, &bill, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// linkExpense records a budget expense matching the payment when the payer's
// household has a budget for the bill's due month. No budget, no expense.
func (s *paymentService) linkExpense(tx *gorm.DB, bill *models.Bill, payment *models.BillPayment) error {
	var payer models.User
	if err := tx.First(&payer, payment.UserID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budget models.Budget
	err := tx.Where("family_id = ? AND month = ?", payer.GroupID, models.MonthStart(bill.DueDate)).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	payerID := payment.UserID
	expense := &models.Expense{
		BudgetID: budget.ID,
		BillID:   &bill.ID,
		Amount:   payment.AmountPaid,
		PayerID:  &payerID,
		Note:     fmt.Sprintf("automatic payment on recording payment of bill #%d", bill.ID),
		Date:     payment.PaymentDate,
	}
	if err := tx.Create(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBillPayments returns a paginated list of payments for a bill.
func (s *paymentService) GetBillPayments(billID uint, page pagination.PageRequest) (*pagination.PageResponse[models.BillPayment], error) {
	var bill models.Bill
	if err := s.db.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page.Defaults()

	base := s.db.Model(&models.BillPayment{}).Where("bill_id = ?", billID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.BillPayment
	if err := base.Scopes(pagination.Paginate(page)).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}
