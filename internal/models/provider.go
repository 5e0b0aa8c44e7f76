package models

// Provider represents a service provider that issues bills (utilities,
// landlords, subscriptions). Name and category are unique together.
type Provider struct {
	Base
	Name     string `gorm:"size:100;not null;uniqueIndex:idx_provider_name_category" json:"name"`
	Category string `gorm:"size:50;not null;uniqueIndex:idx_provider_name_category" json:"category"`
}
