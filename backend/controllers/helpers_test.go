package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/routes"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp builds the full routed app against a fresh in-memory database
// and returns an admin token for the seeded admin account.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret"}
	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	require.NoError(t, db.Create(&admin).Error)

	token, err := utils.GenerateJWTToken(admin.ID, cfg)
	require.NoError(t, err)

	return app, db, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, app *fiber.App, token, title string) models.Course {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/admin/courses", token, fiber.Map{
		"title": title,
		"sku":   "SKU-" + uuid.NewString()[:8],
		"price": 12900,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Course models.Course `json:"course"`
	}
	decodeJSON(t, resp, &body)
	return body.Course
}

func createUnit(t *testing.T, app *fiber.App, token string, courseID uint, title string) models.Unit {
	t.Helper()

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/admin/courses/%d/units", courseID), token, fiber.Map{
		"title": title,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Unit models.Unit `json:"unit"`
	}
	decodeJSON(t, resp, &body)
	return body.Unit
}

func createLesson(t *testing.T, app *fiber.App, token string, unitID uint, title, content string) models.Lesson {
	t.Helper()

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/admin/units/%d/lessons", unitID), token, fiber.Map{
		"title":   title,
		"content": content,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Lesson models.Lesson `json:"lesson"`
	}
	decodeJSON(t, resp, &body)
	return body.Lesson
}
