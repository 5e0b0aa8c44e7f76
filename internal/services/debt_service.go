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

// debtService handles budget debts and their installment payments.
type debtService struct {
	db        *gorm.DB
	movements MovementServicer
	now       func() time.Time
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB, movements MovementServicer) DebtServicer {
	return &debtService{db: db, movements: movements, now: time.Now}
}

// CreateDebt records a debt against a budget and appends the matching ledger
// movement in the same transaction. The estimated end date is derived from
// the installment plan.
func (s *debtService) CreateDebt(
	actingUserID, budgetID uint,
	amount decimal.Decimal,
	reason string,
	installmentsTotal int,
	frequency models.DebtFrequency,
	startDate *time.Time,
	originBillID *uint,
) (*models.Debt, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if reason == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "reason is required")
	}
	if installmentsTotal == 0 {
		installmentsTotal = 1
	}
	if installmentsTotal < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "installments total must be at least 1")
	}
	if frequency == "" {
		frequency = models.DebtFrequencyMonthly
	}

	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	debt := &models.Debt{
		BudgetID:          budget.ID,
		Amount:            amount,
		Reason:            reason,
		OriginBillID:      originBillID,
		InstallmentsTotal: installmentsTotal,
		Frequency:         frequency,
		StartDate:         startDate,
		EndDate:           calcEndDate(startDate, installmentsTotal, frequency),
	}

	userID := actingUserID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(debt).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.movements.Record(tx, budget.ID, models.MovementTypeDebt,
			debt.Amount, s.now(), &userID,
			fmt.Sprintf("Debt: %s", debt.Reason),
			debt.ID, originBillID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return debt, nil
}

// calcEndDate derives the date of the last installment from the plan.
// Monthly plans advance whole calendar months, preserving the day of month
// and letting overflow roll into the next month; biweekly and weekly plans
// advance in fixed 15- and 7-day steps.
func calcEndDate(startDate *time.Time, installmentsTotal int, frequency models.DebtFrequency) *time.Time {
	if startDate == nil || installmentsTotal < 1 {
		return nil
	}

	var end time.Time
	switch frequency {
	case models.DebtFrequencyBiweekly:
		end = startDate.AddDate(0, 0, 15*(installmentsTotal-1))
	case models.DebtFrequencyWeekly:
		end = startDate.AddDate(0, 0, 7*(installmentsTotal-1))
	default:
		end = startDate.AddDate(0, installmentsTotal-1, 0)
	}
	return &end
}

// GetBudgetDebts returns a paginated list of a budget's debts, oldest first,
// optionally filtered by paid state.
func (s *debtService) GetBudgetDebts(budgetID uint, paid *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	base := s.db.Model(&models.Debt{}).Where("budget_id = ?", budgetID)
	if paid != nil {
		base = base.Where("paid = ?", *paid)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at ASC").
		Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID returns a debt with its payments preloaded.
func (s *debtService) GetDebtByID(debtID uint) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Preload("Payments").First(&debt, debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// RecordInstallmentPayment appends an installment payment to a debt and
// updates the debt's settlement state. A manual debt (single installment)
// settles once the cumulative paid amount reaches the debt amount; a staged
// debt settles once every installment is paid, whatever the amounts. A debt
// that is already settled accepts no further payments, which keeps the paid
// installment count within the plan. No ledger movement is emitted for
// installment payments.
func (s *debtService) RecordInstallmentPayment(
	debtID uint,
	amount decimal.Decimal,
	paymentDate time.Time,
	note, receiptFile string,
) (*models.DebtPayment, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var debt models.Debt
	if err := s.db.First(&debt, debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if debt.Paid {
		return nil, apperrors.ErrDebtAlreadyPaid
	}

	if paymentDate.IsZero() {
		paymentDate = s.now()
	}

	payment := &models.DebtPayment{
		DebtID:      debt.ID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Note:        note,
		ReceiptFile: receiptFile,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var payments []models.DebtPayment
		if err := tx.Where("debt_id = ?", debt.ID).Find(&payments).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// A manual debt reaches its single installment on the payment that
		// settles it, however many partial payments led there.
		debt.InstallmentsPaid = len(payments)
		if debt.InstallmentsPaid > debt.InstallmentsTotal {
			debt.InstallmentsPaid = debt.InstallmentsTotal
		}

		if debt.Manual() {
			total := decimal.Zero
			for _, p := range payments {
				total = total.Add(p.Amount)
			}
			if total.GreaterThanOrEqual(debt.Amount) {
				debt.Paid = true
				debt.PaidAt = &payment.PaymentDate
			}
		} else if debt.InstallmentsPaid >= debt.InstallmentsTotal {
			debt.Paid = true
			debt.PaidAt = &payment.PaymentDate
		}

		if err := tx.Save(&debt).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
