package v1

import (
	"strings"

	"github.com/smartspend/backend/internal/models"
)

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name" example:"Jane Doe"`             // Display name of the user
	Email    string `json:"email" example:"jane@example.com"`    // Email address, also the login name
	Password string `json:"password" example:"correct horse bs"` // Plain text password, only ever stored as a hash
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse bs"`
}

// UserData is the public representation of a user.
type UserData struct {
	ID    string `json:"id" example:"d1b4ee8c-9d3f-426a-b9a9-1d7e29fb7e43"`
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"jane@example.com"`
}

// LoginResponse is the contract of a successful login.
type LoginResponse struct {
	Token string   `json:"token"` // Session token for the Authorization header
	User  UserData `json:"user"`
}

// EmailRequest is the body of the endpoints that only take an email
// address.
type EmailRequest struct {
	Email string `json:"email" example:"jane@example.com"`
}

// ResetPasswordRequest is the body of the password reset endpoint.
type ResetPasswordRequest struct {
	Token    string `json:"token"`    // Reset token from the mail
	Password string `json:"password"` // The new password
}

// MessageResponse is the generic success contract of the auth
// endpoints.
type MessageResponse struct {
	Message string `json:"message" example:"password reset mail sent"`
}

func newUserData(user models.User) UserData {
	return UserData{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}
}

// normalizeEmail mirrors the normalization the user model applies on
// save so that lookups match stored addresses.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
