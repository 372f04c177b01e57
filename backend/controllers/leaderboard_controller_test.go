package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.createUser(t, "alice")
	bob, bobToken := env.createUser(t, "bob")

	// Only bob has recorded activity.
	status, _ := env.request(t, "POST", "/api/activity/flush", bobToken, fiber.Map{"minutes_spent": 120})
	require.Equal(t, fiber.StatusOK, status)

	status, result := env.request(t, "GET", "/api/leaderboard", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	rows := result["data"].([]interface{})
	require.Len(t, rows, 2)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, float64(bob.ID), first["user_id"])
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, float64(120), first["total_minutes"])
	assert.Equal(t, float64(1200), first["score"])

	second := rows[1].(map[string]interface{})
	assert.Equal(t, float64(alice.ID), second["user_id"])
	assert.Equal(t, float64(2), second["rank"])
	assert.Equal(t, float64(0), second["score"])

	meta := result["meta"].(map[string]interface{})
	assert.Equal(t, "minutes", meta["metric"])
	assert.Equal(t, false, meta["stale"])
}

func TestLeaderboardMetricParam(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice")

	for _, metric := range []string{"minutes", "score", "streak"} {
		status, result := env.request(t, "GET", "/api/leaderboard?metric="+metric, token, nil)
		require.Equal(t, fiber.StatusOK, status)
		meta := result["meta"].(map[string]interface{})
		assert.Equal(t, metric, meta["metric"])
	}

	status, _ := env.request(t, "GET", "/api/leaderboard?metric=points", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestMyRankEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.createUser(t, "alice")
	_, bobToken := env.createUser(t, "bob")

	status, _ := env.request(t, "POST", "/api/activity/flush", bobToken, fiber.Map{"minutes_spent": 60})
	require.Equal(t, fiber.StatusOK, status)

	status, result := env.request(t, "GET", "/api/leaderboard/rank", bobToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["rank"])

	// Registered but inactive users still rank.
	status, result = env.request(t, "GET", "/api/leaderboard/rank", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	data = result["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["rank"])
}

func TestMyRankUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	// A valid token for a user id that is not in the roster.
	ghostToken := env.tokenFor(t, 9999)
	status, _ := env.request(t, "GET", "/api/leaderboard/rank", ghostToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
