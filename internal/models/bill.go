package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// spanishMonths maps time.Month to the month names used in generated bill names.
var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Bill represents a bill to be paid by the household.
type Bill struct {
	Base
	Name        string          `gorm:"size:100" json:"name"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	ProviderID  uint            `gorm:"not null" json:"provider_id"`
	IssueDate   *time.Time      `json:"issue_date,omitempty"`
	DueDate     time.Time       `gorm:"not null" json:"due_date"`
	Category    string          `gorm:"size:50;not null" json:"category"`
	Description string          `json:"description"`
	InvoiceFile string          `json:"invoice_file,omitempty"`
	CreatorID   uint            `gorm:"not null" json:"creator_id"`

	// Relationships
	Provider Provider      `gorm:"foreignKey:ProviderID" json:"provider"`
	Payments []BillPayment `gorm:"foreignKey:BillID" json:"payments,omitempty"`
}

// GenerateName builds the default bill name "<category> / <Month> <Year>"
// from the due date, falling back to the issue date, then to today.
func (b *Bill) GenerateName(today time.Time) string {
	date := b.DueDate
	if date.IsZero() {
		if b.IssueDate != nil {
			date = *b.IssueDate
		} else {
			date = today
		}
	}
	return fmt.Sprintf("%s / %s %d", b.Category, spanishMonths[date.Month()-1], date.Year())
}

// BillPayment represents a payment made against a bill.
type BillPayment struct {
	Base
	BillID         uint            `gorm:"not null;index" json:"bill_id"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_paid"`
	PaymentDate    time.Time       `gorm:"not null" json:"payment_date"`
	ReceiptFile    string          `json:"receipt_file,omitempty"`
	UserID         uint            `gorm:"not null" json:"user_id"`
	ContributionID *uint           `json:"contribution_id,omitempty"`
}
