// Package errors provides custom error types for the casafin API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Provider errors.
var (
	ErrProviderNotFound  = &AppError{Code: "PROVIDER_NOT_FOUND", Message: "Provider not found", StatusCode: http.StatusNotFound}
	ErrDuplicateProvider = &AppError{Code: "DUPLICATE_PROVIDER", Message: "A provider with this name and category already exists", StatusCode: http.StatusConflict}
)

// Bill and payment errors.
var (
	ErrBillNotFound       = &AppError{Code: "BILL_NOT_FOUND", Message: "Bill not found", StatusCode: http.StatusNotFound}
	ErrPaymentExceedsBill = &AppError{Code: "PAYMENT_EXCEEDS_BILL", Message: "The paid amount cannot exceed the bill amount", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetExists   = &AppError{Code: "BUDGET_EXISTS", Message: "A budget for this family and month already exists", StatusCode: http.StatusConflict}
)

// Debt errors.
var (
	ErrDebtNotFound    = &AppError{Code: "DEBT_NOT_FOUND", Message: "Debt not found", StatusCode: http.StatusNotFound}
	ErrDebtAlreadyPaid = &AppError{Code: "DEBT_ALREADY_PAID", Message: "This debt is already settled", StatusCode: http.StatusUnprocessableEntity}
)

// Settlement errors.
var (
	ErrNoSurplus = &AppError{Code: "NO_SURPLUS", Message: "There is no surplus to transfer", StatusCode: http.StatusUnprocessableEntity}
)
