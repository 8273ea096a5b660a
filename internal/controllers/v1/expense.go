package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/smartspend/backend/internal/alert"
	"github.com/smartspend/backend/internal/auth"
	"github.com/smartspend/backend/internal/httputil"
	"github.com/smartspend/backend/internal/models"
)

// RegisterExpenseRoutes registers the routes for expenses with the
// RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenses)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.PUT("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Param			id	path	string	true	"ID of the expense"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	httputil.OptionsPutDelete(c)
}

// sortColumns maps the exposed sort field names to the SQL used for
// ordering. Only values from this map are ever interpolated into the
// ORDER BY clause.
var sortColumns = map[string]string{
	"createdAt": "datetime(expenses.created_at)",
	"amount":    "expenses.amount",
}

// expenseQuery returns a fresh query for all expenses of the owner
// matching the filter. Fresh per call so that counting and fetching
// do not share gorm statement state.
func expenseQuery(c *gin.Context, filter ExpenseQueryFilter) *gorm.DB {
	q := models.DB.Model(&models.Expense{}).Where("expenses.user_id = ?", auth.Owner(c))

	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("expenses.category = ?", filter.Category)
	}

	if !filter.FromDate.IsZero() {
		from := time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("expenses.date >= ?", from)
	}

	if !filter.ToDate.IsZero() {
		// Until the last instant of the day: strictly before the next day
		until := time.Date(filter.ToDate.Year(), filter.ToDate.Month(), filter.ToDate.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		q = q.Where("expenses.date < ?", until)
	}

	// An empty search string matches all records
	if filter.Search != "" {
		q = q.Where("LOWER(expenses.description) LIKE ?", fmt.Sprintf("%%%s%%", strings.ToLower(filter.Search)))
	}

	return q
}

// @Summary		List expenses
// @Description	Returns a filtered, sorted, and paginated list of the user's expenses
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			page		query	int		false	"Page to return. Defaults to 1, out-of-range values clamp into the valid range."
// @Param			limit		query	int		false	"Records per page. Defaults to 10."
// @Param			sortBy		query	string	false	"Sort field, createdAt or amount. Defaults to createdAt."
// @Param			sortOrder	query	string	false	"Sort direction, asc or desc. Defaults to desc."
// @Param			category	query	string	false	"Exact category match. Empty or 'all' disables the filter."
// @Param			fromDate	query	string	false	"Expenses on and after this day, YYYY-MM-DD."
// @Param			toDate		query	string	false	"Expenses on and before this day, YYYY-MM-DD."
// @Param			search		query	string	false	"Case-insensitive substring match on the description."
// @Router			/v1/expenses [get]
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		c.JSON(http.StatusBadRequest, httpError{Error: errSortByInvalid.Error()})
		return
	}

	sortOrder := filter.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	if !slices.Contains([]string{"asc", "desc"}, sortOrder) {
		c.JSON(http.StatusBadRequest, httpError{Error: errSortOrderInvalid.Error()})
		return
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var total int64
	err := expenseQuery(c, filter).Count(&total).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// At least one page exists even without records. A requested page
	// beyond the last one clamps to the last page instead of returning
	// an empty out-of-range response.
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	expenses := make([]models.Expense, 0)
	err = expenseQuery(c, filter).
		Order(fmt.Sprintf("%s %s", column, strings.ToUpper(sortOrder))).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Expenses:   expenses,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	})
}

// @Summary		Create expense
// @Description	Creates a new expense for the user. When the expense falls into the current month and its amount crosses the monthly budget, a budget alert mail is dispatched.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.Expense
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	expense := editable.model(auth.Owner(c))
	err := models.DB.Create(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	alert.EvaluateWrite(expense, time.Now())

	c.JSON(http.StatusCreated, expense)
}

// @Summary		Update expense
// @Description	Updates an existing expense of the user. The date is only changed when one is supplied. Runs the same budget alert evaluation as expense creation.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.Expense
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		string			true	"ID of the expense"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [put]
func UpdateExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	// Scoping the fetch by owner makes a foreign user's expense
	// indistinguishable from a missing one
	var expense models.Expense
	err := models.DB.First(&expense, "id = ? AND user_id = ?", uri.ID.UUID, auth.Owner(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var update ExpenseEditable
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	expense.Description = update.Description
	expense.Amount = update.Amount
	expense.Category = update.Category
	// The date only changes when one is supplied
	if !update.Date.IsZero() {
		expense.Date = update.Date
	}

	err = models.DB.Save(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	alert.EvaluateWrite(expense, time.Now())

	c.JSON(http.StatusOK, expense)
}

// @Summary		Delete expense
// @Description	Deletes an expense of the user
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path	string	true	"ID of the expense"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var expense models.Expense
	err := models.DB.First(&expense, "id = ? AND user_id = ?", uri.ID.UUID, auth.Owner(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
