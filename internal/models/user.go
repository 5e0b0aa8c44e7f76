package models

// User represents a household member able to log in.
// GroupID identifies the household (family) the user belongs to; every
// member of the same household shares the same group id.
type User struct {
	Base
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `json:"display_name"`
	GroupID     string `gorm:"size:100;not null;index" json:"group_id"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// Name returns the best human-readable identifier for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
