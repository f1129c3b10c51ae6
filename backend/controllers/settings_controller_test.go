package controllers_test

import (
	"fmt"
	"testing"

	"ceplatform/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSetting(t *testing.T) {
	app, db, token := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/admin/settings", token, fiber.Map{
		"key":   "support_email",
		"value": "help@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/admin/settings", token, fiber.Map{
		"key":   "support_email",
		"value": "support@example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.SystemSetting
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "support@example.com", updated.Value)

	var count int64
	db.Model(&models.SystemSetting{}).Where("key = ?", "support_email").Count(&count)
	assert.EqualValues(t, 1, count, "upsert keeps a single row per key")
}

func TestUpsertSettingRequiresKey(t *testing.T) {
	app, _, token := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/admin/settings", token, fiber.Map{
		"value": "orphan",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEmailTemplateLifecycle(t *testing.T) {
	app, _, token := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/admin/email-templates", token, fiber.Map{
		"name":    "enrollment_welcome",
		"subject": "Welcome to your course",
		"body":    "Hi {{first_name}},",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.EmailTemplate `json:"data"`
	}
	decodeJSON(t, resp, &created)
	assert.True(t, created.Data.Enabled)

	enabled := false
	resp = doRequest(t, app, "PATCH", fmt.Sprintf("/api/admin/email-templates/%d", created.Data.ID), token, fiber.Map{
		"subject": "Welcome aboard",
		"enabled": enabled,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.EmailTemplate
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "Welcome aboard", updated.Subject)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "Hi {{first_name}},", updated.Body, "untouched fields survive")

	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/admin/email-templates/%d", created.Data.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleLifecycle(t *testing.T) {
	app, _, token := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/admin/roles", token, fiber.Map{
		"name":        "content_editor",
		"description": "Can author courses and pages",
		"permissions": "courses:write,pages:write",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.UserRole `json:"data"`
	}
	decodeJSON(t, resp, &created)

	resp = doRequest(t, app, "PATCH", fmt.Sprintf("/api/admin/roles/%d", created.Data.ID), token, fiber.Map{
		"permissions": "courses:write,pages:write,media:write",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/admin/roles", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var roles []models.UserRole
	decodeJSON(t, resp, &roles)
	require.Len(t, roles, 1)
	assert.Equal(t, "courses:write,pages:write,media:write", roles[0].Permissions)
}
