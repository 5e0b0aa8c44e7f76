package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tags a ledger entry with the kind of event that produced it.
type MovementType string

const (
	MovementTypeContribution    MovementType = "contribution"
	MovementTypeExpense         MovementType = "expense"
	MovementTypeDebt            MovementType = "debt"
	MovementTypeSaving          MovementType = "saving"
	MovementTypeSurplusTransfer MovementType = "surplus_transfer"
	MovementTypeAdjustment      MovementType = "adjustment"
)

// Movement is an append-only audit-ledger entry for a budget-affecting
// event. ReferenceID holds the id of the originating row; which table it
// points into is determined by Type (contribution → contributions, expense →
// expenses, debt → debts, saving/surplus_transfer → savings). Rows are never
// updated or deleted.
type Movement struct {
	Base
	BudgetID    uint            `gorm:"not null;index" json:"budget_id"`
	Type        MovementType    `gorm:"size:20;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	UserID      *uint           `json:"user_id,omitempty"`
	Description string          `json:"description"`
	ReferenceID uint            `gorm:"not null" json:"reference_id"`
	BillID      *uint           `json:"bill_id,omitempty"`
	Date        time.Time       `gorm:"not null" json:"date"`
}
