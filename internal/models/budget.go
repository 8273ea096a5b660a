package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Budget represents the monthly spending limit of a user.
//
// There is at most one budget per (user, month, year), enforced by the
// composite primary key. Months are counted from 0 (January) to 11
// (December), matching the API contract.
type Budget struct {
	Timestamps
	UserID uuid.UUID       `json:"userId" gorm:"primaryKey" example:"d1f4c4a3-46b0-4e0e-8e85-14d74ce22910"` // ID of the owning user
	User   User            `json:"-"`
	Month  int             `json:"month" gorm:"primaryKey" minimum:"0" maximum:"11" example:"10"` // Month the budget is for, 0 is January
	Year   int             `json:"year" gorm:"primaryKey" example:"2023"`                         // Year the budget is for
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1000" minimum:"0"`   // The budgeted amount
}

// BeforeSave validates the budget.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.Month < 0 || b.Month > 11 {
		return ErrMonthOutOfRange
	}

	if b.Year == 0 {
		return ErrYearNotSet
	}

	if b.Amount.IsNegative() {
		return ErrAmountNegative
	}

	return nil
}

// UpsertBudget writes the budget amount for (user, month, year),
// creating the record if it does not exist and overwriting the amount
// if it does. The upsert is atomic against the primary key so
// concurrent writes cannot create duplicate rows.
func UpsertBudget(budget *Budget) error {
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budget).Error
}

// BudgetAmount returns the budgeted amount for (user, month, year).
//
// A user without a budget for the month is treated as having a budget
// of 0, absence is not an error.
func BudgetAmount(userID uuid.UUID, month, year int) (decimal.Decimal, error) {
	var budget Budget
	err := DB.First(&budget, "user_id = ? AND month = ? AND year = ?", userID, month, year).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return budget.Amount, nil
}
