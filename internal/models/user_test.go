package models_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/smartspend/backend/internal/models"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{
		Name:  "  Ada Lovelace\t",
		Email: " Ada@Example.COM ",
	})

	assert.Equal(suite.T(), "ada@example.com", user.Email)
	assert.Equal(suite.T(), "Ada Lovelace", user.Name)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser(models.User{Email: "ada@example.com"})

	duplicate := models.User{
		Name:  "Imposter",
		Email: "ADA@example.com",
	}
	err := models.DB.Create(&duplicate).Error

	assert.ErrorIs(suite.T(), err, models.ErrEmailAlreadyRegistered)
}

func (suite *TestSuiteStandard) TestUserNewUsersUnverified() {
	user := suite.createTestUser(models.User{})

	var reloaded models.User
	err := models.DB.First(&reloaded, "id = ?", user.ID).Error
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), reloaded.Verified)
}
