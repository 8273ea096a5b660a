package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a single expense of a user.
//
// Date is the day the expense occurred, which the user can backdate or
// future-date freely. CreatedAt tracks when the record was written and
// is the default sort for lists.
type Expense struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"index" example:"d1f4c4a3-46b0-4e0e-8e85-14d74ce22910"` // ID of the owning user
	User        User            `json:"-"`
	Description string          `json:"description" example:"Groceries"`                              // What the money was spent on
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03" minimum:"0"` // The amount spent
	Category    string          `json:"category" example:"Food" default:""`                           // Free-form category string
	Date        time.Time       `json:"date" example:"2023-11-17T00:00:00Z"`                          // Day the expense occurred. Defaults to the creation time
}

// BeforeSave validates the expense and sets the date default.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)
	if e.Description == "" {
		return ErrDescriptionRequired
	}

	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (e *Expense) AfterFind(_ *gorm.DB) (err error) {
	e.Date = e.Date.In(time.UTC)
	return nil
}

// ExpensesSum returns the sum of all expense amounts for the user with
// a date in [from, until].
//
// A user without matching expenses has a sum of 0.
func ExpensesSum(userID uuid.UUID, from, until time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("expenses").
		Where("user_id = ?", userID).
		Where("date >= ?", from).
		Where("date <= ?", until).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses for user %s failed: %w", userID, err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}
