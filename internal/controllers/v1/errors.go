package v1

import (
	"errors"
	"net/http"

	"github.com/smartspend/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no expense matching your query"`
}

// status returns the appropriate HTTP status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Expense errors
var (
	errSortByInvalid    = errors.New("sortBy must be one of: createdAt, amount")
	errSortOrderInvalid = errors.New("sortOrder must be one of: asc, desc")
)

// Budget errors
var (
	errMonthYearRequired = errors.New("the month and year query parameters must be set")
	errBudgetBodyInvalid = errors.New("month, year, and amount are required")
)

// Auth errors
var (
	errRegistrationInvalid = errors.New("name, email, and password are required")
	errCredentialsInvalid  = errors.New("invalid credentials")
	errNotVerified         = errors.New("please verify your email first")
	errAlreadyVerified     = errors.New("this user is already verified")
	errTokenRequired       = errors.New("the token query parameter must be set")
	errPasswordRequired    = errors.New("the password must be set")
	errPasswordIncorrect   = errors.New("the current password is incorrect")
	errNameRequired        = errors.New("the name must be set")
	errMailNotSent         = errors.New("the email could not be sent, please try again later")
)
