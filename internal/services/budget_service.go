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

// budgetService handles monthly budget business logic.
type budgetService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, userService UserServicer) BudgetServicer {
	return &budgetService{db: db, userService: userService}
}

// CreateBudget creates the monthly budget for the creator's family. The
// month is normalized to the first day of the month at 00:00 UTC; only one
// budget may exist per family and month.
func (s *budgetService) CreateBudget(creatorID uint, month time.Time, targetAmount decimal.Decimal) (*models.Budget, error) {
	if month.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required")
	}
	if targetAmount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount cannot be negative")
	}

	creator, err := s.userService.GetUserByID(creatorID)
	if err != nil {
		return nil, err
	}

	monthStart := models.MonthStart(month)

	var count int64
	s.db.Model(&models.Budget{}).
		Where("family_id = ? AND month = ?", creator.GroupID, monthStart).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrBudgetExists
	}

	budget := &models.Budget{
		FamilyID:     creator.GroupID,
		Month:        monthStart,
		TargetAmount: targetAmount,
		CreatorID:    creator.ID,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetFamilyBudgets returns a paginated list of a family's budgets, newest month first.
func (s *budgetService) GetFamilyBudgets(familyID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("family_id = ?", familyID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Order("month DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget with its collections preloaded.
func (s *budgetService) GetBudgetByID(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.
		Preload("Contributions").
		Preload("Expenses").
		Preload("Debts").
		Preload("Savings").
		First(&budget, budgetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}
