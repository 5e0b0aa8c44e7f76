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

// contributionService handles budget contributions.
type contributionService struct {
	db        *gorm.DB
	movements MovementServicer
	now       func() time.Time
}

// NewContributionService creates a new ContributionServicer.
func NewContributionService(db *gorm.DB, movements MovementServicer) ContributionServicer {
	return &contributionService{db: db, movements: movements, now: time.Now}
}

// CreateContribution records a contribution into a budget and appends the
// matching ledger movement in the same transaction.
func (s *contributionService) CreateContribution(
	budgetID uint,
	amount decimal.Decimal,
	userID *uint,
	contributorName, kind, note string,
	billID *uint,
) (*models.Contribution, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if userID == nil && contributorName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a contributor user or name is required")
	}
	if kind == "" {
		kind = models.ContributionKindManual
	}

	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	contributor := contributorName
	if userID != nil {
		var user models.User
		if err := s.db.First(&user, *userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if contributor == "" {
			contributor = user.Name()
		}
	}

	contribution := &models.Contribution{
		BudgetID:        budget.ID,
		Amount:          amount,
		UserID:          userID,
		ContributorName: contributorName,
		Kind:            kind,
		Note:            note,
		BillID:          billID,
		Date:            s.now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contribution).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.movements.Record(tx, budget.ID, models.MovementTypeContribution,
			contribution.Amount, contribution.Date, userID,
			fmt.Sprintf("Contribution by %s", contributor),
			contribution.ID, billID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contribution, nil
}

// GetBudgetContributions returns a paginated list of a budget's contributions.
func (s *contributionService) GetBudgetContributions(budgetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Contribution], error) {
	page.Defaults()

	base := s.db.Model(&models.Contribution{}).Where("budget_id = ?", budgetID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var contributions []models.Contribution
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&contributions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(contributions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
