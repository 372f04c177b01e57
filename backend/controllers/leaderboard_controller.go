package controllers

import (
	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Watcher *services.LeaderboardWatcher
}

func NewLeaderboardController(db *gorm.DB, cfg *config.Config, watcher *services.LeaderboardWatcher) *LeaderboardController {
	return &LeaderboardController{DB: db, Cfg: cfg, Watcher: watcher}
}

// GetLeaderboard godoc
// @Summary Get the ranked leaderboard
// @Description Merges the activity ledger with the full roster and ranks it by the requested metric (minutes, score or streak)
// @Tags leaderboard
// @Produce json
// @Param metric query string false "Sort metric" Enums(minutes, score, streak)
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, lc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	metric, err := services.ParseMetric(c.Query("metric"))
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	rows, err := lc.buildFresh(metric)
	if err != nil {
		// A source read failed. Keep showing the last good ranking if
		// there is one; otherwise tell the client to retry.
		if lc.Watcher != nil {
			if cached, ok := lc.Watcher.Snapshot(metric); ok {
				return utils.Success(c, fiber.StatusOK, cached, fiber.Map{
					"metric": metric,
					"stale":  true,
				})
			}
		}
		return utils.ServiceUnavailable(c, "Leaderboard temporarily unavailable")
	}

	return utils.Success(c, fiber.StatusOK, rows, fiber.Map{
		"metric": metric,
		"stale":  false,
	})
}

// GetMyRank godoc
// @Summary Get the caller's rank
// @Description Returns the caller's 1-based position under the requested metric
// @Tags leaderboard
// @Produce json
// @Param metric query string false "Sort metric" Enums(minutes, score, streak)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard/rank [get]
func (lc *LeaderboardController) GetMyRank(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	metric, err := services.ParseMetric(c.Query("metric"))
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	rows, err := lc.buildFresh(metric)
	if err != nil {
		return utils.ServiceUnavailable(c, "Leaderboard temporarily unavailable")
	}

	rank, ok := services.RankOf(rows, userID)
	if !ok {
		return utils.NotFound(c, "User is not on the leaderboard")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"metric": metric,
		"rank":   rank,
	})
}

// buildFresh snapshots both source tables and aggregates them. Rows are
// read in creation order so tie-breaking stays deterministic across
// requests.
func (lc *LeaderboardController) buildFresh(metric services.Metric) ([]models.LeaderboardRow, error) {
	var records []models.ActivityRecord
	if err := lc.DB.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	var roster []models.User
	if err := lc.DB.Order("id").Find(&roster).Error; err != nil {
		return nil, err
	}

	return services.BuildLeaderboard(records, roster, metric), nil
}
