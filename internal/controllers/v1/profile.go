package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartspend/backend/internal/auth"
	"github.com/smartspend/backend/internal/httputil"
	"github.com/smartspend/backend/internal/models"
)

// RegisterProfileRoutes registers the routes for the user's own
// profile with the RouterGroup that is passed.
func RegisterProfileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsProfile)
	r.GET("", GetProfile)
	r.PUT("/name", UpdateProfileName)
	r.PUT("/password", UpdateProfilePassword)
}

// ProfileNameUpdate is the body of the name update endpoint.
type ProfileNameUpdate struct {
	Name string `json:"name" example:"Jane Doe"`
}

// ProfilePasswordUpdate is the body of the password update endpoint.
// The current password has to be supplied so that a stolen session
// token alone is not enough to take over the account.
type ProfilePasswordUpdate struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Profile
// @Success		204
// @Router			/v1/profile [options]
func OptionsProfile(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get profile
// @Description	Returns the authenticated user's profile
// @Tags			Profile
// @Produce		json
// @Success		200	{object}	UserData
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/profile [get]
func GetProfile(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", auth.Owner(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newUserData(user))
}

// @Summary		Update name
// @Description	Updates the authenticated user's display name
// @Tags			Profile
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserData
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			name	body		ProfileNameUpdate	true	"New name"
// @Router			/v1/profile/name [put]
func UpdateProfileName(c *gin.Context) {
	var update ProfileNameUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if strings.TrimSpace(update.Name) == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errNameRequired.Error()})
		return
	}

	var user models.User
	err := models.DB.First(&user, "id = ?", auth.Owner(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&user).Update("name", strings.TrimSpace(update.Name)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newUserData(user))
}

// @Summary		Update password
// @Description	Updates the authenticated user's password after verifying the current one
// @Tags			Profile
// @Accept			json
// @Produce		json
// @Success		200			{object}	MessageResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			passwords	body		ProfilePasswordUpdate	true	"Current and new password"
// @Router			/v1/profile/password [put]
func UpdateProfilePassword(c *gin.Context) {
	var update ProfilePasswordUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if update.NewPassword == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errPasswordRequired.Error()})
		return
	}

	var user models.User
	err := models.DB.First(&user, "id = ?", auth.Owner(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(update.CurrentPassword)) != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errPasswordIncorrect.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(update.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	err = models.DB.Model(&user).Update("password", string(hash)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}
