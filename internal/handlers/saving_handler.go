package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "casafin/internal/errors"
	"casafin/internal/pagination"
	"casafin/internal/services"
)

// SavingHandler handles budget saving requests.
type SavingHandler struct {
	savingService services.SavingServicer
	auditService  services.AuditServicer
}

// NewSavingHandler creates a new SavingHandler.
func NewSavingHandler(savingService services.SavingServicer, auditService services.AuditServicer) *SavingHandler {
	return &SavingHandler{savingService: savingService, auditService: auditService}
}

// CreateSavingRequest represents the request payload for setting money aside.
type CreateSavingRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required,min=1,max=200"`
	Note   string          `json:"note"`
	BillID *uint           `json:"bill_id"`
}

// CreateSaving handles setting money aside within a budget.
// @Summary     Add saving
// @Description Set money aside within a budget for a stated reason
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Budget ID"
// @Param       request body CreateSavingRequest true "Saving details"
// @Success     201 {object} models.Saving "Saving created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/savings [post]
func (h *SavingHandler) CreateSaving(c *gin.Context) {
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

	var req CreateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	saving, err := h.savingService.CreateSaving(userID, budgetID, req.Amount, req.Reason, req.Note, req.BillID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SAVING", "saving", saving.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"saving": saving})
}

// GetSavings handles listing a budget's savings.
// @Summary     Get savings
// @Description Get a paginated list of a budget's savings
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Budget ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Saving] "Paginated savings"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/savings [get]
func (h *SavingHandler) GetSavings(c *gin.Context) {
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

	result, err := h.savingService.GetBudgetSavings(budgetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
