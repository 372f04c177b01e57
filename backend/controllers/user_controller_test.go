package controllers_test

import (
	"project/backend/services"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice")

	status, _ := env.request(t, "POST", "/api/activity/flush", token, fiber.Map{"minutes_spent": 45})
	require.Equal(t, fiber.StatusOK, status)

	status, result := env.request(t, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	data := result["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, float64(45), data["total_minutes"])
	assert.Equal(t, float64(450), data["score"])
}

func TestUpdateProfilePublishesRosterEvent(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice")

	ch := env.hub.Subscribe()
	defer env.hub.Unsubscribe(ch)

	status, result := env.request(t, "PUT", "/api/user/profile", token, fiber.Map{
		"display_name": "Alice A.",
		"avatar_url":   "https://cdn.example.com/a.png",
	})
	require.Equal(t, fiber.StatusOK, status)

	data := result["data"].(map[string]interface{})
	assert.Equal(t, "Alice A.", data["display_name"])
	assert.Equal(t, "https://cdn.example.com/a.png", data["avatar_url"])

	ev := <-ch
	assert.Equal(t, services.FeedEvent{Kind: services.EventUpdate, Table: services.TableUsers}, ev)
}

func TestUpdateProfileNoChangeNoEvent(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice")

	ch := env.hub.Subscribe()
	defer env.hub.Unsubscribe(ch)

	status, _ := env.request(t, "PUT", "/api/user/profile", token, fiber.Map{})
	require.Equal(t, fiber.StatusOK, status)

	select {
	case ev := <-ch:
		t.Fatalf("unexpected feed event %+v for a no-op update", ev)
	default:
	}
}
