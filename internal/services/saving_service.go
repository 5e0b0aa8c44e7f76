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

// savingService handles budget savings.
type savingService struct {
	db        *gorm.DB
	movements MovementServicer
	now       func() time.Time
}

// NewSavingService creates a new SavingServicer.
func NewSavingService(db *gorm.DB, movements MovementServicer) SavingServicer {
	return &savingService{db: db, movements: movements, now: time.Now}
}

// CreateSaving records money set aside from a budget and appends the
// matching ledger movement in the same transaction.
func (s *savingService) CreateSaving(
	actingUserID, budgetID uint,
	amount decimal.Decimal,
	reason, note string,
	billID *uint,
) (*models.Saving, error) {
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

	saving := &models.Saving{
		BudgetID: budget.ID,
		Amount:   amount,
		Reason:   reason,
		Note:     note,
		BillID:   billID,
	}

	userID := actingUserID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(saving).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.movements.Record(tx, budget.ID, models.MovementTypeSaving,
			saving.Amount, s.now(), &userID,
			fmt.Sprintf("Saving: %s", saving.Reason),
			saving.ID, billID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saving, nil
}

// GetBudgetSavings returns a paginated list of a budget's savings.
func (s *savingService) GetBudgetSavings(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Saving], error) {
	page.Defaults()

	base := s.db.Model(&models.Saving{}).Where("budget_id = ?", budgetID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var savings []models.Saving
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(savings, page.Page, page.PageSize, totalItems)
	return &result, nil
}
