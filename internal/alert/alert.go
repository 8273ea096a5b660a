// Package alert implements the budget evaluator.
//
// On every expense write that falls into the current calendar month,
// the monthly spend is recomputed from the ledger and compared to the
// budget. An alert is only dispatched when this write moves the user
// from under budget to over budget, a user who is already over budget
// is not notified again for every further expense.
//
// There is no persisted "already alerted" flag. The previous state is
// derived by recomputing the monthly total excluding the record that
// was just written, which also means that a user who drops back under
// budget and crosses again is alerted again.
package alert

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smartspend/backend/internal/mailer"
	"github.com/smartspend/backend/internal/models"
	"github.com/smartspend/backend/internal/types"
)

var sender mailer.Sender

// SetSender sets the dispatcher used for budget alerts. With no sender
// set, evaluation is skipped entirely.
func SetSender(s mailer.Sender) {
	sender = s
}

// EvaluateWrite runs crossing detection for an expense that has just
// been created or updated.
//
// Alerts only fire for writes whose date falls in the current
// real-world month: budgets are monthly, and edits to stale months
// should not spam alerts. Failure to send is logged and never
// surfaces to the caller, a failed notification must not fail the
// expense write.
func EvaluateWrite(expense models.Expense, now time.Time) {
	if sender == nil {
		return
	}

	month := types.MonthOf(now)
	if !month.Contains(expense.Date) {
		return
	}

	// The written record is already persisted, so the monthly total
	// includes it. The total without it is the state before the write.
	after, err := models.ExpensesSum(expense.UserID, month.FirstDay(), month.LastDay())
	if err != nil {
		log.Error().Err(err).Str("user", expense.UserID.String()).Msg("budget evaluation: summing expenses failed")
		return
	}
	before := after.Sub(expense.Amount)

	budget, err := models.BudgetAmount(expense.UserID, int(month.Month())-1, month.Year())
	if err != nil {
		log.Error().Err(err).Str("user", expense.UserID.String()).Msg("budget evaluation: reading budget failed")
		return
	}

	if before.GreaterThan(budget) || after.LessThanOrEqual(budget) {
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", expense.UserID).Error
	if err != nil {
		log.Error().Err(err).Str("user", expense.UserID.String()).Msg("budget evaluation: loading user failed")
		return
	}

	name := user.Name
	if name == "" {
		name = "User"
	}

	if err := sender.SendBudgetAlert(user.Email, name, after, budget); err != nil {
		log.Error().Err(err).Str("user", expense.UserID.String()).Msg("budget alert mail failed")
	}
}
