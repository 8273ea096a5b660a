package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/smartspend/backend/internal/controllers/v1"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/test"
)

// createExpense creates an expense through the API and fails the test
// if that does not work.
func (suite *TestSuiteStandard) createExpense(user models.User, editable v1.ExpenseEditable) models.Expense {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/expenses", editable, suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var expense models.Expense
	test.DecodeResponse(suite.T(), &recorder, &expense)

	return expense
}

func (suite *TestSuiteStandard) TestExpensesCreate() {
	user := suite.createTestUser("ada@example.com")

	expense := suite.createExpense(user, v1.ExpenseEditable{
		Description: "Groceries",
		Amount:      decimal.NewFromFloat(14.03),
		Category:    "Food",
	})

	assert.Equal(suite.T(), "Groceries", expense.Description)
	assert.Equal(suite.T(), user.ID, expense.UserID)
	assert.True(suite.T(), expense.Amount.Equal(decimal.NewFromFloat(14.03)))

	// Without an explicit date, the expense is dated now
	assert.WithinDuration(suite.T(), time.Now(), expense.Date, time.Minute)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Expense{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestExpensesCreateInvalid() {
	user := suite.createTestUser("ada@example.com")

	tests := []struct {
		name string
		body any
	}{
		{"empty body", ""},
		{"broken JSON", `{ "description": "Groc`},
		{"missing description", v1.ExpenseEditable{Amount: decimal.NewFromFloat(1)}},
		{"negative amount", v1.ExpenseEditable{Description: "Refund", Amount: decimal.NewFromFloat(-1)}},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodPost, "/v1/expenses", tt.body, suite.authHeaders(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestExpensesRequireAuth() {
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/expenses"},
		{http.MethodPost, "/v1/expenses"},
		{http.MethodPut, "/v1/expenses/" + uuid.New().String()},
		{http.MethodDelete, "/v1/expenses/" + uuid.New().String()},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), tt.method, tt.path, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	}
}

func (suite *TestSuiteStandard) TestExpensesListFilters() {
	user := suite.createTestUser("ada@example.com")

	suite.createExpense(user, v1.ExpenseEditable{Description: "Weekly groceries", Amount: decimal.NewFromFloat(54), Category: "Food", Date: time.Date(2023, 11, 3, 12, 0, 0, 0, time.UTC)})
	suite.createExpense(user, v1.ExpenseEditable{Description: "Cinema", Amount: decimal.NewFromFloat(12), Category: "Leisure", Date: time.Date(2023, 11, 10, 12, 0, 0, 0, time.UTC)})
	suite.createExpense(user, v1.ExpenseEditable{Description: "More groceries", Amount: decimal.NewFromFloat(23), Category: "Food", Date: time.Date(2023, 11, 17, 12, 0, 0, 0, time.UTC)})
	suite.createExpense(user, v1.ExpenseEditable{Description: "Train ticket", Amount: decimal.NewFromFloat(39), Category: "Transport", Date: time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"no filter", "", 4},
		{"category", "category=Food", 2},
		{"category all", "category=all", 4},
		{"unknown category", "category=Books", 0},
		{"from date", "fromDate=2023-11-10", 3},
		{"to date", "toDate=2023-11-10", 2},
		{"date range", "fromDate=2023-11-04&toDate=2023-11-30", 2},
		{"search case-insensitive", "search=GROCERIES", 2},
		{"search no match", "search=restaurant", 0},
		{"combined", "category=Food&search=weekly", 1},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodGet, "/v1/expenses?"+tt.query, "", suite.authHeaders(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.ExpenseListResponse
		test.DecodeResponse(suite.T(), &recorder, &response)
		assert.Len(suite.T(), response.Expenses, tt.count, "Wrong number of results for %q", tt.query)
		assert.Equal(suite.T(), int64(tt.count), response.Total, "Wrong total for %q", tt.query)
	}
}

func (suite *TestSuiteStandard) TestExpensesListSort() {
	user := suite.createTestUser("ada@example.com")

	suite.createExpense(user, v1.ExpenseEditable{Description: "Mid", Amount: decimal.NewFromFloat(20)})
	suite.createExpense(user, v1.ExpenseEditable{Description: "Small", Amount: decimal.NewFromFloat(10)})
	suite.createExpense(user, v1.ExpenseEditable{Description: "Large", Amount: decimal.NewFromFloat(30)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/expenses?sortBy=amount&sortOrder=asc", "", suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Expenses, 3)
	assert.Equal(suite.T(), "Small", response.Expenses[0].Description)
	assert.Equal(suite.T(), "Mid", response.Expenses[1].Description)
	assert.Equal(suite.T(), "Large", response.Expenses[2].Description)
}

func (suite *TestSuiteStandard) TestExpensesListSortInvalid() {
	user := suite.createTestUser("ada@example.com")

	for _, query := range []string{"sortBy=date", "sortBy=amount;DROP TABLE expenses", "sortOrder=sideways"} {
		recorder := test.Request(suite.T(), http.MethodGet, "/v1/expenses?"+query, "", suite.authHeaders(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestExpensesListPagination() {
	user := suite.createTestUser("ada@example.com")

	for i := range 5 {
		suite.createExpense(user, v1.ExpenseEditable{
			Description: fmt.Sprintf("Expense %d", i),
			Amount:      decimal.NewFromInt(int64(i + 1)),
		})
	}

	tests := []struct {
		query      string
		count      int
		page       int
		totalPages int
	}{
		{"limit=2", 2, 1, 3},
		{"limit=2&page=3", 1, 3, 3},
		{"limit=2&page=99", 1, 3, 3}, // out of range clamps to the last page
		{"limit=2&page=0", 2, 1, 3},  // out of range clamps to the first page
		{"limit=10", 5, 1, 1},
		{"", 5, 1, 1}, // default limit is 10
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodGet, "/v1/expenses?"+tt.query, "", suite.authHeaders(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.ExpenseListResponse
		test.DecodeResponse(suite.T(), &recorder, &response)

		assert.Len(suite.T(), response.Expenses, tt.count, "Wrong number of results for %q", tt.query)
		assert.Equal(suite.T(), int64(5), response.Total, "Wrong total for %q", tt.query)
		assert.Equal(suite.T(), tt.page, response.Page, "Wrong page for %q", tt.query)
		assert.Equal(suite.T(), tt.totalPages, response.TotalPages, "Wrong totalPages for %q", tt.query)
	}
}

func (suite *TestSuiteStandard) TestExpensesListEmpty() {
	user := suite.createTestUser("ada@example.com")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/expenses", "", suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.NotNil(suite.T(), response.Expenses, "Expenses must be an empty list, not null")
	assert.Equal(suite.T(), int64(0), response.Total)
	assert.Equal(suite.T(), 1, response.Page)
	assert.Equal(suite.T(), 1, response.TotalPages)
}

func (suite *TestSuiteStandard) TestExpensesOwnerIsolation() {
	ada := suite.createTestUser("ada@example.com")
	grace := suite.createTestUser("grace@example.com")

	suite.createExpense(ada, v1.ExpenseEditable{Description: "Ada's expense", Amount: decimal.NewFromFloat(10)})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/expenses", "", suite.authHeaders(grace))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Expenses, 0)
}

func (suite *TestSuiteStandard) TestExpensesUpdate() {
	user := suite.createTestUser("ada@example.com")

	expense := suite.createExpense(user, v1.ExpenseEditable{
		Description: "Groceries",
		Amount:      decimal.NewFromFloat(14.03),
		Category:    "Food",
		Date:        time.Date(2023, 11, 17, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.T(), http.MethodPut, "/v1/expenses/"+expense.ID.String(), v1.ExpenseEditable{
		Description: "Groceries and drinks",
		Amount:      decimal.NewFromFloat(21.99),
		Category:    "Food",
	}, suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated models.Expense
	test.DecodeResponse(suite.T(), &recorder, &updated)

	assert.Equal(suite.T(), "Groceries and drinks", updated.Description)
	assert.True(suite.T(), updated.Amount.Equal(decimal.NewFromFloat(21.99)))

	// The date is only changed when one is supplied
	assert.True(suite.T(), updated.Date.Equal(expense.Date), "Date changed from %s to %s", expense.Date, updated.Date)
}

func (suite *TestSuiteStandard) TestExpensesUpdateInvalid() {
	user := suite.createTestUser("ada@example.com")

	expense := suite.createExpense(user, v1.ExpenseEditable{Description: "Groceries", Amount: decimal.NewFromFloat(10)})

	// Validation runs on update as well
	recorder := test.Request(suite.T(), http.MethodPut, "/v1/expenses/"+expense.ID.String(), v1.ExpenseEditable{
		Description: "",
		Amount:      decimal.NewFromFloat(10),
	}, suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Not a UUID
	recorder = test.Request(suite.T(), http.MethodPut, "/v1/expenses/not-a-uuid", "", suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpensesForeignOwnerNotFound() {
	ada := suite.createTestUser("ada@example.com")
	grace := suite.createTestUser("grace@example.com")

	expense := suite.createExpense(ada, v1.ExpenseEditable{Description: "Ada's expense", Amount: decimal.NewFromFloat(10)})

	// A foreign expense is indistinguishable from a missing one
	recorder := test.Request(suite.T(), http.MethodPut, "/v1/expenses/"+expense.ID.String(), v1.ExpenseEditable{
		Description: "Hijacked",
		Amount:      decimal.NewFromFloat(1),
	}, suite.authHeaders(grace))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodDelete, "/v1/expenses/"+expense.ID.String(), "", suite.authHeaders(grace))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodPut, "/v1/expenses/"+uuid.New().String(), v1.ExpenseEditable{
		Description: "Missing",
		Amount:      decimal.NewFromFloat(1),
	}, suite.authHeaders(ada))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpensesDelete() {
	user := suite.createTestUser("ada@example.com")

	expense := suite.createExpense(user, v1.ExpenseEditable{Description: "Groceries", Amount: decimal.NewFromFloat(10)})

	recorder := test.Request(suite.T(), http.MethodDelete, "/v1/expenses/"+expense.ID.String(), "", suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Deleting again returns 404
	recorder = test.Request(suite.T(), http.MethodDelete, "/v1/expenses/"+expense.ID.String(), "", suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestExpensesCreateTriggersAlert() {
	user := suite.createTestUser("ada@example.com")

	now := time.Now().In(time.UTC)
	budget := models.Budget{
		UserID: user.ID,
		Month:  int(now.Month()) - 1,
		Year:   now.Year(),
		Amount: decimal.NewFromFloat(100),
	}
	suite.Require().Nil(models.UpsertBudget(&budget))

	suite.createExpense(user, v1.ExpenseEditable{Description: "Groceries", Amount: decimal.NewFromFloat(90)})
	assert.Len(suite.T(), suite.mails.budgetAlerts, 0)

	suite.createExpense(user, v1.ExpenseEditable{Description: "Concert tickets", Amount: decimal.NewFromFloat(80)})
	if assert.Len(suite.T(), suite.mails.budgetAlerts, 1) {
		assert.Equal(suite.T(), "ada@example.com", suite.mails.budgetAlerts[0].email)
	}
}

func (suite *TestSuiteStandard) TestExpensesOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "/v1/expenses", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))
}
