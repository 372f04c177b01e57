package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"project/backend/config"
	"project/backend/models"
	"project/backend/routes"
	"project/backend/services"
	"project/backend/utils"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
	hub *services.FeedHub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{JWTSecret: "testsecret", ServerPort: "8080"}
	hub := services.NewFeedHub()
	watcher := services.NewLeaderboardWatcher(db, hub, nil)

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg, hub, watcher)

	return &testEnv{app: app, db: db, cfg: cfg, hub: hub}
}

func (e *testEnv) createUser(t *testing.T, username string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	u := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		DisplayName:  username,
	}
	require.NoError(t, e.db.Create(&u).Error)

	token, err := utils.GenerateJWTToken(u.ID, e.cfg)
	require.NoError(t, err)

	return u, token
}

func (e *testEnv) tokenFor(t *testing.T, userID uint) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(userID, e.cfg)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}
