package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/models"
)

// ExpenseEditable contains the fields of an expense that callers can
// set.
type ExpenseEditable struct {
	Description string          `json:"description" example:"Groceries"`     // What the money was spent on
	Amount      decimal.Decimal `json:"amount" example:"14.03" minimum:"0"`  // The amount spent
	Category    string          `json:"category" example:"Food" default:""`  // Free-form category string
	Date        time.Time       `json:"date" example:"2023-11-17T00:00:00Z"` // Day the expense occurred. Defaults to the creation time
}

// model returns the database resource for the API representation of
// the editable fields, scoped to the owner.
func (editable ExpenseEditable) model(owner uuid.UUID) models.Expense {
	return models.Expense{
		UserID:      owner,
		Description: editable.Description,
		Amount:      editable.Amount,
		Category:    editable.Category,
		Date:        editable.Date,
	}
}

// ExpenseQueryFilter contains the query parameters of the expense
// list endpoint.
type ExpenseQueryFilter struct {
	Page      int       `form:"page"`                                           // Page to return, starting at 1. Out-of-range pages clamp
	Limit     int       `form:"limit"`                                          // Records per page. Defaults to 10
	SortBy    string    `form:"sortBy"`                                         // Sort field: createdAt or amount. Defaults to createdAt
	SortOrder string    `form:"sortOrder"`                                      // Sort direction: asc or desc. Defaults to desc
	Category  string    `form:"category"`                                       // Exact category match. Empty or "all" disables the filter
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1"` // Expenses on and after this day
	ToDate    time.Time `form:"toDate" time_format:"2006-01-02" time_utc:"1"`   // Expenses on and before this day
	Search    string    `form:"search"`                                         // Case-insensitive substring match on the description
}

// ExpenseListResponse is the contract of the expense list endpoint.
type ExpenseListResponse struct {
	Expenses   []models.Expense `json:"expenses"`                // The matching page of expenses
	Total      int64            `json:"total" example:"121"`     // Count of all matching expenses
	Page       int              `json:"page" example:"2"`        // The returned page
	TotalPages int              `json:"totalPages" example:"13"` // max(ceil(total/limit), 1)
}
