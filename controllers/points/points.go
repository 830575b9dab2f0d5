package pointsController

import (
	"errors"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AwardPointsHandler handles POST /points. A learner may award points only to
// themselves; targeting another user requires the ADMIN role.
func AwardPointsHandler(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedAward").(*struct {
		UserID *uint  `json:"user_id"`
		Points int    `json:"points"`
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	targetID := userID
	reason := models.PointsReasonManual
	description := "Manual points award"
	var adminID uint
	if reqData.UserID != nil && *reqData.UserID != userID {
		if user.Role != "ADMIN" {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can award points to other users!", nil)
		}
		targetID = *reqData.UserID
		reason = models.PointsReasonAdminAward
		description = "Admin points award"
		adminID = userID

		var target models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Target user not found!", nil)
		}
	}
	if reqData.Reason != "" {
		reason = models.PointsReason(reqData.Reason)
	}

	var result *AwardResult
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = AwardPoints(tx, targetID, reqData.Points, reason, description, adminID)
		return txErr
	})
	if err != nil {
		if errors.Is(err, ErrNonPositivePoints) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Points must be a positive number!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to award points!", nil)
	}

	if result.LeveledUp {
		go utils.NotifyLevelUp(targetID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Points awarded successfully!", result)
}

// GetMyPoints returns the caller's point total, level and recent awards
func GetMyPoints(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	points := models.UserPoints{UserID: userID, TotalPoints: 0, Level: 1}
	database.Database.Db.Where("user_id = ?", userID).First(&points)

	var recent []models.PointsTransaction
	database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Limit(10).Find(&recent)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Points fetched successfully!", fiber.Map{
		"total_points":  points.TotalPoints,
		"level":         points.Level,
		"recent_awards": recent,
	})
}

// GetLeaderboard returns the top users by point total
func GetLeaderboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	limit := config.AppConfig.LeaderboardLimit
	if limit <= 0 {
		limit = 20
	}

	var rows []models.UserPoints
	if err := database.Database.Db.Order("total_points desc").Limit(limit).Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	type LeaderboardEntry struct {
		Rank        int    `json:"rank"`
		UserID      uint   `json:"user_id"`
		Name        string `json:"name"`
		TotalPoints int    `json:"total_points"`
		Level       int    `json:"level"`
	}

	entries := make([]LeaderboardEntry, len(rows))
	for i, row := range rows {
		var u models.User
		database.Database.Db.Where("id = ?", row.UserID).First(&u)
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			Name:        u.Name,
			TotalPoints: row.TotalPoints,
			Level:       row.Level,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", fiber.Map{
		"leaderboard": entries,
	})
}
