package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a family's monthly financial plan. Month is anchored to
// the first day of the target month at 00:00 UTC. One budget is expected per
// family and month; the create path rejects duplicates.
type Budget struct {
	Base
	FamilyID     string          `gorm:"size:100;not null;index" json:"family_id"`
	Month        time.Time       `gorm:"not null;index" json:"month"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"target_amount"`
	CreatorID    uint            `gorm:"not null" json:"creator_id"`

	// Relationships
	Contributions []Contribution `gorm:"foreignKey:BudgetID" json:"contributions,omitempty"`
	Expenses      []Expense      `gorm:"foreignKey:BudgetID" json:"expenses,omitempty"`
	Debts         []Debt         `gorm:"foreignKey:BudgetID" json:"debts,omitempty"`
	Savings       []Saving       `gorm:"foreignKey:BudgetID" json:"savings,omitempty"`
	Movements     []Movement     `gorm:"foreignKey:BudgetID" json:"movements,omitempty"`
}

// MonthStart normalizes a date to the first day of its month at 00:00 UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
