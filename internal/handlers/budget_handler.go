package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "casafin/internal/errors"
	"casafin/internal/pagination"
	"casafin/internal/services"
)

// BudgetHandler handles monthly budget requests, including the
// settlement endpoints that redistribute a month's surplus.
type BudgetHandler struct {
	budgetService     services.BudgetServicer
	movementService   services.MovementServicer
	settlementService services.SettlementServicer
	auditService      services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, movementService services.MovementServicer, settlementService services.SettlementServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{
		budgetService:     budgetService,
		movementService:   movementService,
		settlementService: settlementService,
		auditService:      auditService,
	}
}

// CreateBudgetRequest represents the request payload for creating a monthly budget.
type CreateBudgetRequest struct {
	Month        time.Time       `json:"month" binding:"required"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

// CreateBudget handles the creation of a monthly budget.
// @Summary     Create monthly budget
// @Description Create a budget for the caller's family; the month is normalized to its first day
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Budget already exists for the month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, req.Month, req.TargetAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"month": budget.Month.Format("2006-01")})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing the caller's family budgets.
// @Summary     Get budgets
// @Description Get the caller's family budgets, most recent month first
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	groupID, err := getGroupID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetFamilyBudgets(groupID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles retrieving a budget with its collections.
// @Summary     Get budget by ID
// @Description Get a budget with its contributions, expenses, debts, and savings
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetSummary handles computing a budget's totals and surplus.
// @Summary     Get budget summary
// @Description Get a budget's contribution, expense, saving, and debt totals with the current surplus
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} services.BudgetSummary "Budget summary"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/summary [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.settlementService.Summarize(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetMovements handles listing a budget's ledger movements.
// @Summary     Get budget movements
// @Description Get the budget's append-only movement ledger, oldest first
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Budget ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Movement] "Paginated movements"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/movements [get]
func (h *BudgetHandler) GetMovements(c *gin.Context) {
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

	result, err := h.movementService.GetBudgetMovements(budgetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// TransferSurplus handles redistributing a budget's surplus.
// @Summary     Transfer budget surplus
// @Description Pay off unpaid debts oldest-first from the surplus and save the remainder
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} services.SettlementResult "Settlement result"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     422 {object} ErrorResponse "No surplus to transfer"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/transfer-surplus [post]
func (h *BudgetHandler) TransferSurplus(c *gin.Context) {
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

	result, err := h.settlementService.TransferSurplus(budgetID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TRANSFER_SURPLUS", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"surplus": result.Surplus.String(), "paid_to_debts": result.PaidToDebts.String(), "saved": result.Saved.String()})

	c.JSON(http.StatusOK, gin.H{"settlement": result})
}

// CloseMonth handles closing a budget's month.
// @Summary     Close budget month
// @Description Transfer the surplus if any and confirm the month is closed
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} services.CloseMonthResult "Close result"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/close-month [post]
func (h *BudgetHandler) CloseMonth(c *gin.Context) {
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

	result, err := h.settlementService.CloseMonth(budgetID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CLOSE_MONTH", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, result)
}
