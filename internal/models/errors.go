package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrDescriptionRequired = errors.New("the description must be set")
	ErrAmountNegative      = errors.New("the amount must be zero or positive")
	ErrMonthOutOfRange     = errors.New("the month must be between 0 and 11")
	ErrYearNotSet          = errors.New("the year must be set")

	ErrEmailAlreadyRegistered = errors.New("a user with this email address already exists")
)
