// Package v1 implements the v1 API of the backend.
package v1

import (
	"time"

	"github.com/smartspend/backend/internal/config"
)

// UserMailer sends the identity-related mails. It is an interface so
// tests can record mails instead of speaking SMTP.
type UserMailer interface {
	SendVerification(toEmail, name, link string) error
	SendPasswordReset(toEmail, link string) error
}

var (
	jwtSecret       []byte
	sessionValidity time.Duration
	verifyValidity  time.Duration
	resetValidity   time.Duration
	apiURL          string
	clientURL       string
	userMail        UserMailer
)

// Configure sets the dependencies of the auth and profile handlers.
func Configure(cfg *config.Config, mail UserMailer) {
	jwtSecret = []byte(cfg.JWTSecret)
	sessionValidity = cfg.SessionTokenValidity
	verifyValidity = cfg.VerifyTokenValidity
	resetValidity = cfg.ResetTokenValidity
	apiURL = cfg.APIURL
	clientURL = cfg.ClientURL
	userMail = mail
}
