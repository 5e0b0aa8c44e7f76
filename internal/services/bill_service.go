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

// billService handles bill-related business logic.
type billService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB) BillServicer {
	return &billService{db: db, now: time.Now}
}

// CreateBill creates a bill. When name is empty it is generated from the
// bill's category and due month.
func (s *billService) CreateBill(
	creatorID, providerID uint,
	name string,
	amount decimal.Decimal,
	category, description string,
	issueDate *time.Time,
	dueDate time.Time,
	invoiceFile string,
) (*models.Bill, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}

	var provider models.Provider
	if err := s.db.First(&provider, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProviderNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	bill := &models.Bill{
		Name:        name,
		Amount:      amount,
		ProviderID:  provider.ID,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		Category:    category,
		Description: description,
		InvoiceFile: invoiceFile,
		CreatorID:   creatorID,
	}
	if bill.Name == "" {
		bill.Name = bill.GenerateName(s.now())
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	bill.Provider = provider
	return bill, nil
}

// GetBills returns a paginated, filtered list of bills ordered by due date.
func (s *billService) GetBills(page pagination.PageRequest, filter BillFilter) (*pagination.PageResponse[models.Bill], error) {
	page.Defaults()

	base := s.db.Model(&models.Bill{})
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.ProviderID != nil {
		base = base.Where("provider_id = ?", *filter.ProviderID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.Bill
	if err := base.Preload("Provider").Scopes(pagination.Paginate(page)).
		Order("due_date DESC").
		Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBillByID returns a bill with its provider and payments preloaded.
func (s *billService) GetBillByID(billID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.Preload("Provider").Preload("Payments").First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// UpdateBill updates an existing bill's fields. A new invoice file reference
// replaces the previous one; removal of the underlying file is the storage
// layer's concern.
func (s *billService) UpdateBill(
	billID uint,
	name, description, invoiceFile *string,
	amount *decimal.Decimal,
	dueDate *time.Time,
) (*models.Bill, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if invoiceFile != nil {
		updates["invoice_file"] = *invoiceFile
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if dueDate != nil {
		updates["due_date"] = *dueDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(bill).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return bill, nil
}

// DeleteBill soft-deletes a bill.
func (s *billService) DeleteBill(billID uint) error {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
