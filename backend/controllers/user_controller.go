package controllers

import (
	"errors"
	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Hub *services.FeedHub
}

func NewUserController(db *gorm.DB, cfg *config.Config, hub *services.FeedHub) *UserController {
	return &UserController{DB: db, Cfg: cfg, Hub: hub}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's profile and activity summary
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	// Zero-valued before the first flush; the score is always derived.
	var activity models.ActivityRecord
	uc.DB.Where("user_id = ?", userID).First(&activity)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"display_name":  user.DisplayName,
		"avatar_url":    user.AvatarURL,
		"created_at":    user.CreatedAt,
		"total_minutes": activity.TotalMinutes,
		"streak_days":   activity.StreakDays,
		"score":         activity.TotalMinutes * services.ScorePerMinute,
	})
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates the authenticated user's display name and avatar reference
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	changed := false
	if input.DisplayName != "" && input.DisplayName != user.DisplayName {
		user.DisplayName = input.DisplayName
		changed = true
	}
	if input.AvatarURL != "" && input.AvatarURL != user.AvatarURL {
		user.AvatarURL = input.AvatarURL
		changed = true
	}

	if changed {
		if err := uc.DB.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.BadRequest(c, "Profile conflicts with an existing user")
			}
			return utils.InternalServerError(c, "Could not update profile")
		}
		if uc.Hub != nil {
			uc.Hub.Publish(services.FeedEvent{Kind: services.EventUpdate, Table: services.TableUsers})
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":           user.ID,
		"display_name": user.DisplayName,
		"avatar_url":   user.AvatarURL,
	})
}
