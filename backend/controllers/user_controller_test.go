package controllers_test

import (
	"testing"

	"ceplatform/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRoundTrip(t *testing.T) {
	app, db, _ := newTestApp(t)
	user := createUser(t, db, "profileuser")
	token := loginAs(t, app, user.Username)

	resp := doRequest(t, app, "PUT", "/api/user/profile", token, fiber.Map{
		"first_name": "Morgan",
		"license_no": "SL7654321",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var profile struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LicenseNo string `json:"license_no"`
	}
	decodeJSON(t, resp, &profile)
	assert.Equal(t, "profileuser", profile.Username)
	assert.Equal(t, "profileuser@example.com", profile.Email, "untouched fields survive")
	assert.Equal(t, "Morgan", profile.FirstName)
	assert.Equal(t, "SL7654321", profile.LicenseNo)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Morgan", stored.FirstName)
}

func TestProfileRequiresToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/user/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
