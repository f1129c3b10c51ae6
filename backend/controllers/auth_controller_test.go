package controllers_test

import (
	"testing"

	"ceplatform/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app, db, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username":   "learner1",
		"email":      "learner1@example.com",
		"password":   "secret123",
		"first_name": "Jamie",
		"license_no": "SL1234567",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeJSON(t, resp, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "learner1", registered.User.Username)

	resp = doRequest(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"username": "learner1",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var loggedIn struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeJSON(t, resp, &loggedIn)
	assert.NotEmpty(t, loggedIn.Token)
	assert.Equal(t, "user", loggedIn.User.Role)

	var history int64
	db.Model(&models.LoginHistory{}).Where("user_id = ?", registered.User.ID).Count(&history)
	assert.EqualValues(t, 1, history)

	var events int64
	db.Model(&models.ActivityEvent{}).
		Where("user_id = ? AND event_type = ?", registered.User.ID, "login").
		Count(&events)
	assert.EqualValues(t, 1, events)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRequiresFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username": "incomplete",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, db, _ := newTestApp(t)

	user := createUser(t, db, "plainuser")
	token := loginAs(t, app, user.Username)

	resp := doRequest(t, app, "GET", "/api/admin/courses", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/admin/courses", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func loginAs(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &body)
	return body.Token
}
