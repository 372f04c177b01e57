package utils

import (
	"net/http/httptest"
	"project/backend/config"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken(42, cfg)
	require.NoError(t, err)

	app := fiber.New()
	var got uint
	app.Get("/", func(c *fiber.Ctx) error {
		id, err := ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return err
		}
		got = id
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(42), got)
}

func TestExtractUserIDMissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, err := ExtractUserIDFromToken(c, cfg)
		return err
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExtractUserIDWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken(42, &config.Config{JWTSecret: "one"})
	require.NoError(t, err)

	cfg := &config.Config{JWTSecret: "two"}
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, err := ExtractUserIDFromToken(c, cfg)
		return err
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
