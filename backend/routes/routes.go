package routes

import (
	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"
	"project/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *services.FeedHub, watcher *services.LeaderboardWatcher) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg, hub)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg, hub)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Activity routes
	accrual := services.NewAccrualService(db, hub)
	activityController := controllers.NewActivityController(db, cfg, accrual)
	app.Post("/api/activity/flush", authMiddleware, activityController.Flush)
	app.Get("/api/activity", authMiddleware, activityController.GetActivity)

	// Leaderboard routes
	leaderboardController := controllers.NewLeaderboardController(db, cfg, watcher)
	app.Get("/api/leaderboard", authMiddleware, leaderboardController.GetLeaderboard)
	app.Get("/api/leaderboard/rank", authMiddleware, leaderboardController.GetMyRank)

	// Change feed subscription
	eventsController := controllers.NewEventsController(cfg, hub)
	app.Get("/api/events", eventsController.Subscribe)
}
