package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents money spent from a monthly budget. Created directly by
// a user or automatically when a bill payment is recorded for the budget's
// month.
type Expense struct {
	Base
	BudgetID uint            `gorm:"not null;index" json:"budget_id"`
	BillID   *uint           `json:"bill_id,omitempty"`
	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PayerID  *uint           `json:"payer_id,omitempty"`
	Note     string          `json:"note,omitempty"`
	Date     time.Time       `gorm:"not null" json:"date"`
}
