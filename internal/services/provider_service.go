package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "casafin/internal/errors"
	"casafin/internal/models"
	"casafin/internal/pagination"
)

// providerService handles provider-related business logic.
type providerService struct {
	db *gorm.DB
}

// NewProviderService creates a new ProviderServicer.
func NewProviderService(db *gorm.DB) ProviderServicer {
	return &providerService{db: db}
}

// CreateProvider creates a provider. Name and category are unique together.
func (s *providerService) CreateProvider(name, category string) (*models.Provider, error) {
	if name == "" || category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and category are required")
	}

	var count int64
	s.db.Model(&models.Provider{}).Where("name = ? AND category = ?", name, category).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateProvider
	}

	provider := &models.Provider{Name: name, Category: category}
	if err := s.db.Create(provider).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return provider, nil
}

// GetProviders returns a paginated list of providers, optionally filtered by category.
func (s *providerService) GetProviders(category string, page pagination.PageRequest) (*pagination.PageResponse[models.Provider], error) {
	page.Defaults()

	base := s.db.Model(&models.Provider{})
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var providers []models.Provider
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&providers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(providers, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProviderByID returns a provider by ID.
func (s *providerService) GetProviderByID(providerID uint) (*models.Provider, error) {
	var provider models.Provider
	if err := s.db.First(&provider, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProviderNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &provider, nil
}
