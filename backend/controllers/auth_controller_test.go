package controllers_test

import (
	"project/backend/services"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	ch := env.hub.Subscribe()
	defer env.hub.Unsubscribe(ch)

	status, result := env.request(t, "POST", "/api/auth/register", "", fiber.Map{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])

	user := result["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
	// Display name falls back to the username.
	assert.Equal(t, "newuser", user["display_name"])

	// Registration announces the roster change so leaderboards pick up
	// the new zero-activity row.
	ev := <-ch
	assert.Equal(t, services.FeedEvent{Kind: services.EventInsert, Table: services.TableUsers}, ev)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, "POST", "/api/auth/register", "", fiber.Map{
		"username": "nopassword",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	status, result := env.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "password",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])

	status, _ = env.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginDoesNotTouchStreak(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice")

	status, _ := env.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "password",
	})
	require.Equal(t, fiber.StatusOK, status)

	// Streak accrual belongs to activity flushes only; logging in does
	// not create or bump an activity record.
	status, result := env.request(t, "GET", "/api/activity", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["streak_days"])
	assert.Equal(t, float64(0), data["total_minutes"])
}
