package models

import (
	"strings"

	"gorm.io/gorm"
)

// User represents a registered user of the expense tracker.
//
// All expenses and budgets belong to exactly one user; queries are
// always scoped to the owning user.
type User struct {
	DefaultModel
	Name     string `json:"name" example:"Ada Lovelace"`                          // Display name of the user
	Email    string `json:"email" gorm:"uniqueIndex" example:"ada@example.com"`   // Email address, unique over all users
	Password string `json:"-"`                                                    // bcrypt hash of the password
	Verified bool   `json:"verified" example:"true" gorm:"default:false"`         // Whether the email address has been verified
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	return nil
}
