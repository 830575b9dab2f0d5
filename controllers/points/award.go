package pointsController

import (
	"errors"

	"lms/database"
	"lms/models"

	"gorm.io/gorm"
)

// levelThresholds maps level N (1-based) to the minimum total at index N-1.
// Totals beyond the last threshold stay at the max level.
var levelThresholds = []int{0, 100, 300, 600, 1000, 1500, 2200, 3000, 4000, 5000}

// ErrNonPositivePoints rejects awards of zero or negative points
var ErrNonPositivePoints = errors.New("points must be a positive number")

// LevelForPoints returns the level for a point total
func LevelForPoints(totalPoints int) int {
	level := 1
	for i, min := range levelThresholds {
		if totalPoints >= min {
			level = i + 1
		}
	}
	return level
}

// AwardResult reports the outcome of a points award
type AwardResult struct {
	NewTotal  int  `json:"new_total"`
	NewLevel  int  `json:"new_level"`
	LeveledUp bool `json:"leveled_up"`
}

// AwardPoints credits points to a user inside the caller's transaction,
// creating the ledger row on first award. The total is bumped with an atomic
// SQL increment so concurrent awards to the same user never lose updates,
// and the level is recomputed from the post-increment total.
func AwardPoints(tx *gorm.DB, userID uint, points int, reason models.PointsReason, description string, adminID uint) (*AwardResult, error) {
	if points <= 0 {
		return nil, ErrNonPositivePoints
	}

	var row models.UserPoints
	err := database.LockForUpdate(tx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.UserPoints{UserID: userID, TotalPoints: 0, Level: 1}
		if err := tx.Create(&row).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	result := tx.Model(&models.UserPoints{}).
		Where("user_id = ?", userID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", points))
	if result.Error != nil {
		return nil, result.Error
	}

	// Re-read the post-increment total; the increment above is atomic, so
	// this total already includes any concurrent award that won the race.
	if err := tx.Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}

	totalBefore := row.TotalPoints - points
	newLevel := LevelForPoints(row.TotalPoints)
	if err := tx.Model(&models.UserPoints{}).
		Where("user_id = ?", userID).
		UpdateColumn("level", newLevel).Error; err != nil {
		return nil, err
	}

	txn := models.PointsTransaction{
		UserID:      userID,
		Points:      points,
		TotalBefore: totalBefore,
		TotalAfter:  row.TotalPoints,
		LevelAfter:  newLevel,
		Reason:      reason,
		Description: description,
		AdminID:     adminID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}

	return &AwardResult{
		NewTotal:  row.TotalPoints,
		NewLevel:  newLevel,
		LeveledUp: newLevel > LevelForPoints(totalBefore),
	}, nil
}
