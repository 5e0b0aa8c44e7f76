package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtFrequency represents how often installments of a debt fall due.
type DebtFrequency string

const (
	DebtFrequencyMonthly  DebtFrequency = "monthly"
	DebtFrequencyBiweekly DebtFrequency = "biweekly"
	DebtFrequencyWeekly   DebtFrequency = "weekly"
)

// Debt represents money owed by a monthly budget. A debt with
// InstallmentsTotal == 1 is a manual (lump) debt settled by cumulative paid
// amount; any other debt is staged and settled by installment count.
type Debt struct {
	Base
	BudgetID          uint            `gorm:"not null;index" json:"budget_id"`
	Amount            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason            string          `gorm:"not null" json:"reason"`
	Paid              bool            `gorm:"default:false" json:"paid"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	OriginBillID      *uint           `json:"origin_bill_id,omitempty"`
	InstallmentsTotal int             `gorm:"not null;default:1" json:"installments_total"`
	InstallmentsPaid  int             `gorm:"not null;default:0" json:"installments_paid"`
	Frequency         DebtFrequency   `gorm:"size:20;not null;default:monthly" json:"frequency"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`

	// Relationships
	Payments []DebtPayment `gorm:"foreignKey:DebtID" json:"payments,omitempty"`
}

// Manual reports whether the debt is settled by cumulative amount rather
// than by installment count.
func (d *Debt) Manual() bool {
	return d.InstallmentsTotal == 1
}

// DebtPayment represents a single installment payment against a debt.
// Append-only; Debt.InstallmentsPaid is the count of these rows.
type DebtPayment struct {
	Base
	DebtID      uint            `gorm:"not null;index" json:"debt_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Note        string          `json:"note,omitempty"`
	ReceiptFile string          `json:"receipt_file,omitempty"`
}
