package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/auth"
	"github.com/smartspend/backend/internal/httputil"
	"github.com/smartspend/backend/internal/models"
)

// RegisterBudgetRoutes registers the routes for the monthly budget
// with the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudget)
	r.GET("", GetBudget)
	r.POST("", UpsertBudget)
}

// BudgetQuery are the query parameters of the budget read endpoint.
type BudgetQuery struct {
	Month *int `form:"month"` // Month the budget is for, 0 is January
	Year  *int `form:"year"`  // Year the budget is for
}

// BudgetEditable contains the fields of a budget that callers can set.
type BudgetEditable struct {
	Month  *int             `json:"month" minimum:"0" maximum:"11" example:"10"` // Month the budget is for, 0 is January
	Year   *int             `json:"year" example:"2023"`                         // Year the budget is for
	Amount *decimal.Decimal `json:"amount" minimum:"0" example:"1000"`           // The budgeted amount
}

// BudgetResponse is the contract of both budget endpoints.
type BudgetResponse struct {
	Budget decimal.Decimal `json:"budget" example:"1000"` // The budgeted amount, 0 when no budget is set
	Month  int             `json:"month" example:"10"`    // Month the budget is for, 0 is January
	Year   int             `json:"year" example:"2023"`   // Year the budget is for
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/budget [options]
func OptionsBudget(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get budget
// @Description	Returns the user's budget for the given month and year. A month without a configured budget reads as 0.
// @Tags			Budget
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			month	query	int	true	"Month the budget is for, 0 is January"
// @Param			year	query	int	true	"Year the budget is for"
// @Router			/v1/budget [get]
func GetBudget(c *gin.Context) {
	var query BudgetQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.Month == nil || query.Year == nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errMonthYearRequired.Error()})
		return
	}

	amount, err := models.BudgetAmount(auth.Owner(c), *query.Month, *query.Year)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{
		Budget: amount,
		Month:  *query.Month,
		Year:   *query.Year,
	})
}

// @Summary		Set budget
// @Description	Creates or overwrites the user's budget for the given month and year
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budget [post]
func UpsertBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.Month == nil || editable.Year == nil || editable.Amount == nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errBudgetBodyInvalid.Error()})
		return
	}

	budget := models.Budget{
		UserID: auth.Owner(c),
		Month:  *editable.Month,
		Year:   *editable.Year,
		Amount: *editable.Amount,
	}

	err := models.UpsertBudget(&budget)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{
		Budget: budget.Amount,
		Month:  budget.Month,
		Year:   budget.Year,
	})
}
