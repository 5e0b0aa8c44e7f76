package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionKindManual is the default kind tag for user-entered contributions.
const ContributionKindManual = "manual"

// Contribution represents money a member puts into a monthly budget.
// The contributor is either a registered user (UserID) or a free-text name.
type Contribution struct {
	Base
	BudgetID        uint            `gorm:"not null;index" json:"budget_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	UserID          *uint           `json:"user_id,omitempty"`
	ContributorName string          `gorm:"size:100" json:"contributor_name,omitempty"`
	Kind            string          `gorm:"size:50;default:manual" json:"kind"`
	Note            string          `json:"note,omitempty"`
	BillID          *uint           `json:"bill_id,omitempty"`
	Date            time.Time       `gorm:"not null" json:"date"`
}
