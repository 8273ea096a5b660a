package v1_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/smartspend/backend/internal/controllers/v1"
	"github.com/smartspend/backend/test"
)

func intRef(i int) *int {
	return &i
}

func decimalRef(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func (suite *TestSuiteStandard) TestBudgetRequireAuth() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/budget?month=10&year=2023", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/budget", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestBudgetGetUnset() {
	user := suite.createTestUser("ada@example.com")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/budget?month=10&year=2023", "", suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Budget.IsZero(), "Unset budget is not zero: %s", response.Budget)
	assert.Equal(suite.T(), 10, response.Month)
	assert.Equal(suite.T(), 2023, response.Year)
}

func (suite *TestSuiteStandard) TestBudgetGetMissingParams() {
	user := suite.createTestUser("ada@example.com")

	for _, query := range []string{"", "month=10", "year=2023"} {
		recorder := test.Request(suite.T(), http.MethodGet, "/v1/budget?"+query, "", suite.authHeaders(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestBudgetUpsert() {
	user := suite.createTestUser("ada@example.com")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budget", v1.BudgetEditable{
		Month:  intRef(10),
		Year:   intRef(2023),
		Amount: decimalRef(500),
	}, suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Setting the same month again overwrites the amount
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/budget", v1.BudgetEditable{
		Month:  intRef(10),
		Year:   intRef(2023),
		Amount: decimalRef(750),
	}, suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/budget?month=10&year=2023", "", suite.authHeaders(user))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Budget.Equal(decimal.NewFromFloat(750)), "Budget is wrong: %s", response.Budget)
}

func (suite *TestSuiteStandard) TestBudgetUpsertInvalid() {
	user := suite.createTestUser("ada@example.com")

	tests := []struct {
		name string
		body any
	}{
		{"empty body", ""},
		{"missing amount", v1.BudgetEditable{Month: intRef(10), Year: intRef(2023)}},
		{"missing month", v1.BudgetEditable{Year: intRef(2023), Amount: decimalRef(100)}},
		{"month out of range", v1.BudgetEditable{Month: intRef(12), Year: intRef(2023), Amount: decimalRef(100)}},
		{"negative month", v1.BudgetEditable{Month: intRef(-1), Year: intRef(2023), Amount: decimalRef(100)}},
		{"negative amount", v1.BudgetEditable{Month: intRef(10), Year: intRef(2023), Amount: decimalRef(-100)}},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodPost, "/v1/budget", tt.body, suite.authHeaders(user))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestBudgetOwnerIsolation() {
	ada := suite.createTestUser("ada@example.com")
	grace := suite.createTestUser("grace@example.com")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budget", v1.BudgetEditable{
		Month:  intRef(10),
		Year:   intRef(2023),
		Amount: decimalRef(500),
	}, suite.authHeaders(ada))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Another user reads their own budget, not Ada's
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/budget?month=10&year=2023", "", suite.authHeaders(grace))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Budget.IsZero())
}

func (suite *TestSuiteStandard) TestBudgetOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "/v1/budget", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))
}
