// Package mailer implements the outgoing email transport.
//
// The budget evaluator only depends on the Sender interface so that
// tests can record alerts instead of speaking SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// Sender dispatches a budget alert to a user.
type Sender interface {
	SendBudgetAlert(toEmail, name string, spent, budget decimal.Decimal) error
}

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ Sender = (*Mailer)(nil)

func New(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

var budgetAlertTemplate = template.Must(template.New("budgetAlert").Parse(`<h2>Hello {{.Name}},</h2>
<p>You have spent <b>{{.Spent}}</b> this month, which exceeds your budget of <b>{{.Budget}}</b>.</p>
<p>Please review your expenses and plan accordingly.</p>
<p>&ndash; Smartspend</p>
`))

var verificationTemplate = template.Must(template.New("verification").Parse(`<h2>Hello {{.Name}},</h2>
<p>Please <a href="{{.Link}}">verify your email address</a> to activate your account.</p>
<p>The link is valid for 24 hours.</p>
<p>&ndash; Smartspend</p>
`))

var passwordResetTemplate = template.Must(template.New("passwordReset").Parse(`<h2>Hello,</h2>
<p>You requested a password reset. <a href="{{.Link}}">Set a new password here</a>.</p>
<p>The link is valid for 15 minutes. If you did not request a reset, you can ignore this mail.</p>
<p>&ndash; Smartspend</p>
`))

// SendBudgetAlert notifies the user that the monthly budget has been
// exceeded.
func (m *Mailer) SendBudgetAlert(toEmail, name string, spent, budget decimal.Decimal) error {
	body, err := render(budgetAlertTemplate, map[string]string{
		"Name":   name,
		"Spent":  spent.StringFixed(2),
		"Budget": budget.StringFixed(2),
	})
	if err != nil {
		return err
	}

	return m.send(toEmail, "Monthly budget exceeded", body)
}

// SendVerification sends the email verification link to a freshly
// registered user.
func (m *Mailer) SendVerification(toEmail, name, link string) error {
	body, err := render(verificationTemplate, map[string]string{
		"Name": name,
		"Link": link,
	})
	if err != nil {
		return err
	}

	return m.send(toEmail, "Verify your email address", body)
}

// SendPasswordReset sends the password reset link.
func (m *Mailer) SendPasswordReset(toEmail, link string) error {
	body, err := render(passwordResetTemplate, map[string]string{
		"Link": link,
	})
	if err != nil {
		return err
	}

	return m.send(toEmail, "Reset your password", body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s failed: %w", to, err)
	}

	return nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering mail template %q failed: %w", t.Name(), err)
	}

	return buf.String(), nil
}
