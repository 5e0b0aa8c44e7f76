package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "casafin/internal/errors"
	"casafin/internal/pagination"
	"casafin/internal/services"
)

// ProviderHandler handles provider-related requests.
type ProviderHandler struct {
	providerService services.ProviderServicer
	auditService    services.AuditServicer
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(providerService services.ProviderServicer, auditService services.AuditServicer) *ProviderHandler {
	return &ProviderHandler{providerService: providerService, auditService: auditService}
}

// CreateProviderRequest represents the request payload for creating a provider.
type CreateProviderRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Category string `json:"category" binding:"required,min=1,max=50"`
}

// CreateProvider handles the creation of a new provider.
// @Summary     Create a provider
// @Description Create a new bill provider; name and category are unique together
// @Tags        providers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProviderRequest true "Provider details"
// @Success     201 {object} models.Provider "Provider created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Provider already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /providers [post]
func (h *ProviderHandler) CreateProvider(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	provider, err := h.providerService.CreateProvider(req.Name, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PROVIDER", "provider", provider.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "category": req.Category})

	c.JSON(http.StatusCreated, gin.H{"provider": provider})
}

// GetProviders handles listing providers, optionally filtered by category.
// @Summary     Get providers
// @Description Get a paginated list of providers, optionally filtered by category
// @Tags        providers
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Provider] "Paginated providers"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /providers [get]
func (h *ProviderHandler) GetProviders(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.providerService.GetProviders(c.Query("category"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
