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

// BillHandler handles bill and bill-payment requests.
type BillHandler struct {
	billService    services.BillServicer
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService services.BillServicer, paymentService services.PaymentServicer, auditService services.AuditServicer) *BillHandler {
	return &BillHandler{billService: billService, paymentService: paymentService, auditService: auditService}
}

// CreateBillRequest represents the request payload for creating a bill.
type CreateBillRequest struct {
	Name        string          `json:"name" binding:"omitempty,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ProviderID  uint            `json:"provider_id" binding:"required"`
	IssueDate   *time.Time      `json:"issue_date"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	Category    string          `json:"category" binding:"required,min=1,max=50"`
	Description string          `json:"description"`
	InvoiceFile string          `json:"invoice_file"`
}

// UpdateBillRequest represents the request payload for updating a bill.
type UpdateBillRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *time.Time       `json:"due_date"`
	Description *string          `json:"description"`
	InvoiceFile *string          `json:"invoice_file"`
}

// RecordPaymentRequest represents the request payload for recording a bill payment.
type RecordPaymentRequest struct {
	AmountPaid     decimal.Decimal `json:"amount_paid" binding:"required"`
	PaymentDate    time.Time       `json:"payment_date"`
	ReceiptFile    string          `json:"receipt_file"`
	ContributionID *uint           `json:"contribution_id"`
}

// CreateBill handles the creation of a new bill.
// @Summary     Create a bill
// @Description Create a new bill; an empty name is generated from category and due month
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBillRequest true "Bill details"
// @Success     201 {object} models.Bill "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Provider not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.billService.CreateBill(userID, req.ProviderID, req.Name, req.Amount,
		req.Category, req.Description, req.IssueDate, req.DueDate, req.InvoiceFile)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BILL", "bill", bill.ID, c.ClientIP(),
		map[string]interface{}{"name": bill.Name, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// GetBills handles listing bills.
// @Summary     Get bills
// @Description Get a paginated list of bills with optional category and provider filters
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       category    query string false "Filter by category"
// @Param       provider_id query int    false "Filter by provider"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Bill] "Paginated bills"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [get]
func (h *BillHandler) GetBills(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.BillFilter
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("provider_id"); v != "" {
		providerID, err := parseQueryID(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "provider_id must be a positive integer"))
			return
		}
		filter.ProviderID = &providerID
	}

	result, err := h.billService.GetBills(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBill handles retrieving a specific bill with its payments.
// @Summary     Get bill by ID
// @Description Get a bill with its provider and payments
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bill ID"
// @Success     200 {object} models.Bill "Bill details"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetBillByID(billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// UpdateBill handles updating an existing bill.
// @Summary     Update bill
// @Description Update an existing bill's fields
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Bill ID"
// @Param       request body UpdateBillRequest true "Updated bill details"
// @Success     200 {object} models.Bill "Updated bill"
// @Failure     400 {object} ErrorResponse "Invalid input or bill ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bill, err := h.billService.UpdateBill(billID, req.Name, req.Description, req.InvoiceFile, req.Amount, req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BILL", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deleting a bill.
// @Summary     Delete bill
// @Description Delete a bill by ID (soft delete)
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bill ID"
// @Success     200 {object} MessageResponse "Bill deleted"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(billID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_BILL", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

// RecordPayment handles recording a payment against a bill.
// @Summary     Record bill payment
// @Description Record a payment; if a budget exists for the bill's due month, a matching expense is created
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Bill ID"
// @Param       request body RecordPaymentRequest true "Payment details"
// @Success     201 {object} models.BillPayment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or paid amount exceeds bill"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/payments [post]
func (h *BillHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	payment, err := h.paymentService.RecordBillPayment(userID, billID, req.AmountPaid,
		req.PaymentDate, req.ReceiptFile, req.ContributionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_BILL_PAYMENT", "bill_payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"bill_id": billID, "amount_paid": req.AmountPaid.String()})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetPayments handles listing payments for a bill.
// @Summary     Get bill payments
// @Description Get a paginated list of payments recorded against a bill
// @Tags        bills
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Bill ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.BillPayment] "Paginated payments"
// @Failure     400 {object} ErrorResponse "Invalid bill ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/payments [get]
func (h *BillHandler) GetPayments(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.paymentService.GetBillPayments(billID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
