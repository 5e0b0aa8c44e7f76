package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "casafin/internal/errors"
	"casafin/internal/pagination"
	"casafin/internal/services"
)

// ContributionHandler handles budget contribution requests.
type ContributionHandler struct {
	contributionService services.ContributionServicer
	auditService        services.AuditServicer
}

// NewContributionHandler creates a new ContributionHandler.
func NewContributionHandler(contributionService services.ContributionServicer, auditService services.AuditServicer) *ContributionHandler {
	return &ContributionHandler{contributionService: contributionService, auditService: auditService}
}

// CreateContributionRequest represents the request payload for adding a contribution.
type CreateContributionRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	UserID          *uint           `json:"user_id"`
	ContributorName string          `json:"contributor_name" binding:"omitempty,max=100"`
	Kind            string          `json:"kind" binding:"omitempty,max=30"`
	Note            string          `json:"note"`
	BillID          *uint           `json:"bill_id"`
}

// CreateContribution handles adding a contribution to a budget.
// @Summary     Add contribution
// @Description Add money into a budget on behalf of a member or a named contributor
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                       true "Budget ID"
// @Param       request body CreateContributionRequest true "Contribution details"
// @Success     201 {object} models.Contribution "Contribution created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/contributions [post]
func (h *ContributionHandler) CreateContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// When no contributor is named the caller is the contributor.
	if req.UserID == nil && req.ContributorName == "" {
		req.UserID = &userID
	}

	contribution, err := h.contributionService.CreateContribution(budgetID, req.Amount,
		req.UserID, req.ContributorName, req.Kind, req.Note, req.BillID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CONTRIBUTION", "contribution", contribution.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"contribution": contribution})
}

// GetContributions handles listing a budget's contributions.
// @Summary     Get contributions
// @Description Get a paginated list of a budget's contributions
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Budget ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Contribution] "Paginated contributions"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/contributions [get]
func (h *ContributionHandler) GetContributions(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.contributionService.GetBudgetContributions(budgetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
