package models

import "github.com/shopspring/decimal"

// Saving represents money set aside from a monthly budget, either entered
// by a user or created automatically from a surplus transfer.
type Saving struct {
	Base
	BudgetID uint            `gorm:"not null;index" json:"budget_id"`
	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason   string          `json:"reason,omitempty"`
	Note     string          `json:"note,omitempty"`
	BillID   *uint           `json:"bill_id,omitempty"`
}
