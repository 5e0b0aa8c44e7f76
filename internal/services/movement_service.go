package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "casafin/internal/errors"
	"casafin/internal/models"
	"casafin/internal/pagination"
)

// movementService maintains the append-only budget ledger.
type movementService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewMovementService creates a new MovementServicer.
func NewMovementService(db *gorm.DB) MovementServicer {
	return &movementService{db: db, now: time.Now}
}

// Record appends a ledger entry. It runs on the caller's transaction handle
// so the movement commits or rolls back together with the entity it mirrors,
// and carries the caller's date so both rows share one timestamp. Movements
// are never updated or deleted afterwards.
func (s *movementService) Record(
	tx *gorm.DB,
	budgetID uint,
	movementType models.MovementType,
	amount decimal.Decimal,
	date time.Time,
	userID *uint,
	description string,
	referenceID uint,
	billID *uint,
) (*models.Movement, error) {
	if date.IsZero() {
		date = s.now()
	}

	movement := &models.Movement{
		BudgetID:    budgetID,
		Type:        movementType,
		Amount:      amount,
		UserID:      userID,
		Description: description,
		ReferenceID: referenceID,
		BillID:      billID,
		Date:        date,
	}
	if err := tx.Create(movement).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return movement, nil
}

// GetBudgetMovements returns a paginated list of a budget's ledger entries,
// newest first.
func (s *movementService) GetBudgetMovements(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Movement], error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page.Defaults()

	base := s.db.Model(&models.Movement{}).Where("budget_id = ?", budgetID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var movements []models.Movement
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(movements, page.Page, page.PageSize, totalItems)
	return &result, nil
}
