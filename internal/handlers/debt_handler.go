package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "casafin/internal/errors"
	"casafin/internal/models"
	"casafin/internal/pagination"
	"casafin/internal/services"
)

// DebtHandler handles budget debt and installment payment requests.
type DebtHandler struct {
	debtService  services.DebtServicer
	auditService services.AuditServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer, auditService services.AuditServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService, auditService: auditService}
}

// CreateDebtRequest represents the request payload for registering a debt.
type CreateDebtRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Reason            string          `json:"reason" binding:"required,min=1,max=200"`
	InstallmentsTotal int             `json:"installments_total" binding:"omitempty,min=1"`
	Frequency         string          `json:"frequency" binding:"omitempty,debt_frequency"`
	StartDate         *time.Time      `json:"start_date"`
	OriginBillID      *uint           `json:"origin_bill_id"`
}

// RecordInstallmentRequest represents the request payload for paying a debt installment.
type RecordInstallmentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"payment_date"`
	Note        string          `json:"note"`
	ReceiptFile string          `json:"receipt_file"`
}

// CreateDebt handles registering a debt against a budget.
// @Summary     Register debt
// @Description Register a one-off or installment debt against a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Budget ID"
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
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

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(userID, budgetID, req.Amount, req.Reason,
		req.InstallmentsTotal, models.DebtFrequency(req.Frequency), req.StartDate, req.OriginBillID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DEBT", "debt", debt.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// GetDebts handles listing a budget's debts.
// @Summary     Get debts
// @Description Get a budget's debts oldest first, optionally filtered by paid status
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int    true  "Budget ID"
// @Param       paid      query bool   false "Filter by paid status"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Debt] "Paginated debts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
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

	var paid *bool
	if v := c.Query("paid"); v != "" {
		value, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "paid must be true or false"))
			return
		}
		paid = &value
	}

	result, err := h.debtService.GetBudgetDebts(budgetID, paid, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebt handles retrieving a debt with its installment payments.
// @Summary     Get debt by ID
// @Description Get a debt with its installment payments
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     200 {object} models.Debt "Debt details"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebt(c *gin.Context) {
	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetDebtByID(debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// RecordInstallment handles paying an installment against a debt.
// @Summary     Record installment payment
// @Description Record a payment against a debt; the debt is marked paid when its installments or amount are covered
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "Debt ID"
// @Param       request body RecordInstallmentRequest true "Installment payment details"
// @Success     201 {object} models.DebtPayment "Installment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     422 {object} ErrorResponse "Debt already settled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id}/payments [post]
func (h *DebtHandler) RecordInstallment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payment, err := h.debtService.RecordInstallmentPayment(debtID, req.Amount, req.PaymentDate, req.Note, req.ReceiptFile)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_DEBT_PAYMENT", "debt_payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"debt_id": debtID, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}
