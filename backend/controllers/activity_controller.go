package controllers

import (
	"errors"
	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Accrual *services.AccrualService
}

func NewActivityController(db *gorm.DB, cfg *config.Config, accrual *services.AccrualService) *ActivityController {
	return &ActivityController{DB: db, Cfg: cfg, Accrual: accrual}
}

type FlushInput struct {
	MinutesSpent int `json:"minutes_spent"`
}

// Flush godoc
// @Summary Report elapsed learning time
// @Description Merges a session's elapsed minutes into the caller's activity record and recomputes the streak
// @Tags activity
// @Accept json
// @Produce json
// @Param input body FlushInput true "Whole minutes elapsed since the last confirmed flush"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activity/flush [post]
func (ac *ActivityController) Flush(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input FlushInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.MinutesSpent < 1 {
		return utils.BadRequest(c, "minutes_spent must be at least 1")
	}

	rec, err := ac.Accrual.ApplyFlush(userID, input.MinutesSpent, time.Now())
	switch {
	case errors.Is(err, services.ErrInvalidMinutes), errors.Is(err, services.ErrUnknownUser):
		return utils.BadRequest(c, err.Error())
	case err != nil:
		return utils.InternalServerError(c, "Could not record activity")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"total_minutes": rec.TotalMinutes,
		"streak":        rec.StreakDays,
	})
}

// GetActivity godoc
// @Summary Get own activity summary
// @Description Returns the caller's ledger row; zeros before the first flush
// @Tags activity
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activity [get]
func (ac *ActivityController) GetActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var rec models.ActivityRecord
	if err := ac.DB.Where("user_id = ?", userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Success(c, fiber.StatusOK, fiber.Map{
				"user_id":       userID,
				"total_minutes": 0,
				"streak_days":   0,
				"score":         0,
			})
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user_id":       rec.UserID,
		"total_minutes": rec.TotalMinutes,
		"streak_days":   rec.StreakDays,
		"score":         rec.TotalMinutes * services.ScorePerMinute,
		"last_active":   rec.LastActive,
	})
}
