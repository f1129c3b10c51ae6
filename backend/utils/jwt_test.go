package utils

import (
	"net/http/httptest"
	"testing"

	"ceplatform/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractWithHeader(t *testing.T, cfg *config.Config, header string) (uint, error) {
	t.Helper()

	var userID uint
	var extractErr error
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		userID, extractErr = ExtractUserIDFromToken(c, cfg)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	_, err := app.Test(req)
	require.NoError(t, err)

	return userID, extractErr
}

func TestExtractUserIDFromToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	token, err := GenerateJWTToken(42, cfg)
	require.NoError(t, err)

	userID, err := extractWithHeader(t, cfg, token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)

	userID, err = extractWithHeader(t, cfg, "Bearer "+token)
	require.NoError(t, err, "the Bearer scheme is accepted")
	assert.EqualValues(t, 42, userID)
}

func TestExtractUserIDFromTokenRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	_, err := extractWithHeader(t, cfg, "")
	assert.Error(t, err, "missing header")

	_, err = extractWithHeader(t, cfg, "Bearer not-a-token")
	assert.Error(t, err)

	foreign, err := GenerateJWTToken(42, &config.Config{JWTSecret: "other-secret"})
	require.NoError(t, err)
	_, err = extractWithHeader(t, cfg, "Bearer "+foreign)
	assert.Error(t, err, "wrong signing key")
}
