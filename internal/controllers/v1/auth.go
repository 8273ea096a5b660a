package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartspend/backend/internal/auth"
	"github.com/smartspend/backend/internal/httputil"
	"github.com/smartspend/backend/internal/models"
)

// RegisterAuthRoutes registers the routes for registration and
// authentication with the RouterGroup that is passed.
//
// These routes are the only ones that do not require an authenticated
// owner context.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.POST("/register", Register)
	r.POST("/login", Login)
	r.GET("/verify-email", VerifyEmail)
	r.POST("/resend-verification", ResendVerification)
	r.POST("/forgot-password", ForgotPassword)
	r.POST("/reset-password", ResetPassword)
}

// @Summary		Register
// @Description	Creates a new user and sends an email verification link. The account can not log in before the email address is verified.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	MessageResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var request RegisterRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if request.Name == "" || request.Email == "" || request.Password == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errRegistrationInvalid.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	user := models.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: string(hash),
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := sendVerificationMail(user); err != nil {
		log.Error().Err(err).Str("user", user.ID.String()).Msg("verification mail failed")
		c.JSON(http.StatusInternalServerError, httpError{Error: errMailNotSent.Error()})
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{
		Message: "registration successful. Please check your email to verify your account",
	})
}

// @Summary		Login
// @Description	Verifies the credentials and returns a session token for the user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	httpError
// @Failure		403			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var request LoginRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// A wrong email and a wrong password are indistinguishable on
	// purpose
	var user models.User
	err := models.DB.First(&user, "email = ?", normalizeEmail(request.Email)).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errCredentialsInvalid.Error()})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errCredentialsInvalid.Error()})
		return
	}

	if !user.Verified {
		c.JSON(http.StatusForbidden, httpError{Error: errNotVerified.Error()})
		return
	}

	token, err := auth.GenerateToken(user.ID.String(), jwtSecret, sessionValidity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  newUserData(user),
	})
}

// @Summary		Verify email
// @Description	Marks the user's email address as verified. Called from the link in the verification mail, therefore the response is HTML.
// @Tags			Auth
// @Produce		html
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			token	query	string	true	"Verification token from the mail"
// @Router			/v1/auth/verify-email [get]
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errTokenRequired.Error()})
		return
	}

	userID, err := auth.GetUserIDFromToken(token, jwtSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !user.Verified {
		err = models.DB.Model(&user).Update("verified", true).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(fmt.Sprintf("<h2>Email verified successfully.</h2><p>You can now <a href=%q>log in</a>.</p>", clientURL+"/login")))
}

// @Summary		Resend verification mail
// @Description	Sends a new email verification link for an unverified user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	MessageResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			email	body		EmailRequest	true	"Email address"
// @Router			/v1/auth/resend-verification [post]
func ResendVerification(c *gin.Context) {
	var request EmailRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var user models.User
	err := models.DB.First(&user, "email = ?", normalizeEmail(request.Email)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if user.Verified {
		c.JSON(http.StatusBadRequest, httpError{Error: errAlreadyVerified.Error()})
		return
	}

	if err := sendVerificationMail(user); err != nil {
		log.Error().Err(err).Str("user", user.ID.String()).Msg("verification mail failed")
		c.JSON(http.StatusInternalServerError, httpError{Error: errMailNotSent.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "verification link sent"})
}

// @Summary		Forgot password
// @Description	Sends a password reset link to the user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	MessageResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			email	body		EmailRequest	true	"Email address"
// @Router			/v1/auth/forgot-password [post]
func ForgotPassword(c *gin.Context) {
	var request EmailRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var user models.User
	err := models.DB.First(&user, "email = ?", normalizeEmail(request.Email)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	token, err := auth.GenerateToken(user.ID.String(), jwtSecret, resetValidity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	if err := userMail.SendPasswordReset(user.Email, fmt.Sprintf("%s/reset-password?token=%s", clientURL, token)); err != nil {
		log.Error().Err(err).Str("user", user.ID.String()).Msg("password reset mail failed")
		c.JSON(http.StatusInternalServerError, httpError{Error: errMailNotSent.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password reset mail sent"})
}

// @Summary		Reset password
// @Description	Sets a new password for the user identified by the reset token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	MessageResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			reset	body		ResetPasswordRequest	true	"Token and new password"
// @Router			/v1/auth/reset-password [post]
func ResetPassword(c *gin.Context) {
	var request ResetPasswordRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if request.Password == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errPasswordRequired.Error()})
		return
	}

	userID, err := auth.GetUserIDFromToken(request.Token, jwtSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", userID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	err = models.DB.Model(&user).Update("password", string(hash)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password reset successful"})
}

// sendVerificationMail issues a fresh verification token and mails the
// verification link.
func sendVerificationMail(user models.User) error {
	token, err := auth.GenerateToken(user.ID.String(), jwtSecret, verifyValidity)
	if err != nil {
		return err
	}

	return userMail.SendVerification(user.Email, user.Name, fmt.Sprintf("%s/v1/auth/verify-email?token=%s", apiURL, token))
}
