package controllers

import (
	"errors"
	"math"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errUnitNotInCourse = errors.New("unit does not belong to the enrollment's course")

// progressUpdate carries the optional fields of a unit-progress write
type progressUpdate struct {
	Status       *string
	Score        *int
	TimeDeltaSec int
}

// recordUnitProgress upserts the (enrollment, unit) row and recomputes the
// enrollment aggregate. Must run inside a transaction; the enrollment row is
// locked so two units completing at once can't recompute from stale counts.
// CompletedAt is set exactly once and TimeSpentSec accumulates.
func recordUnitProgress(tx *gorm.DB, enrollment *courseModels.Enrollment, unit *courseModels.Unit, upd progressUpdate) (*courseModels.UnitProgress, error) {
	if unit.CourseID != enrollment.CourseID {
		return nil, errUnitNotInCourse
	}

	// Serialize concurrent progress writes for the same enrollment
	if err := database.LockForUpdate(tx).
		Where("id = ?", enrollment.ID).
		First(enrollment).Error; err != nil {
		return nil, err
	}

	// Explicit get-or-create so first-write semantics stay visible
	var progress courseModels.UnitProgress
	err := tx.Where("enrollment_id = ? AND unit_id = ? AND is_deleted = ?", enrollment.ID, unit.ID, false).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = courseModels.UnitProgress{
			EnrollmentID: enrollment.ID,
			UnitID:       unit.ID,
			Status:       courseModels.ProgressInProgress,
		}
	} else if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		progress.Status = *upd.Status
	}
	if upd.Score != nil {
		progress.Score = upd.Score
	}
	if upd.TimeDeltaSec > 0 {
		progress.TimeSpentSec += upd.TimeDeltaSec
	}

	// First completion stamps the timestamp; later calls keep the original
	if progress.Status == courseModels.ProgressCompleted && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := tx.Save(&progress).Error; err != nil {
		return nil, err
	}

	if err := recomputeEnrollmentProgress(tx, enrollment); err != nil {
		return nil, err
	}

	return &progress, nil
}

// recomputeEnrollmentProgress recalculates the enrollment's completion
// percentage from completed-unit counts and applies the status transition:
// 0% leaves status unchanged, 1-99% is IN_PROGRESS, 100% is COMPLETED.
func recomputeEnrollmentProgress(tx *gorm.DB, enrollment *courseModels.Enrollment) error {
	var totalUnits int64
	if err := tx.Model(&courseModels.Unit{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", enrollment.CourseID, false, true).
		Count(&totalUnits).Error; err != nil {
		return err
	}

	var completedUnits int64
	if err := tx.Model(&courseModels.UnitProgress{}).
		Joins("JOIN units ON units.id = unit_progresses.unit_id").
		Where("unit_progresses.enrollment_id = ? AND unit_progresses.status = ? AND unit_progresses.is_deleted = ?",
			enrollment.ID, courseModels.ProgressCompleted, false).
		Where("units.is_deleted = ? AND units.is_published = ?", false, true).
		Count(&completedUnits).Error; err != nil {
		return err
	}

	// A course with zero units stays at 0% and keeps its status
	pct := 0
	if totalUnits > 0 {
		pct = int(math.Round(100 * float64(completedUnits) / float64(totalUnits)))
	}

	enrollment.Progress = pct

	if pct > 0 {
		if enrollment.StartedAt == nil {
			now := time.Now()
			enrollment.StartedAt = &now
		}
		if pct >= 100 {
			enrollment.Status = courseModels.ProgressCompleted
			if enrollment.CompletedAt == nil {
				now := time.Now()
				enrollment.CompletedAt = &now
			}
		} else {
			enrollment.Status = courseModels.ProgressInProgress
		}
	}

	return tx.Save(enrollment).Error
}

// RecordUnitProgress handles POST /enrollments/:id/progress
func RecordUnitProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		UnitID       uint    `json:"unit_id"`
		Status       *string `json:"status"`
		Score        *int    `json:"score"`
		TimeSpentSec int     `json:"time_spent_sec"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	// Learners record progress only on their own enrollment
	if enrollment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not your enrollment!", nil)
	}

	var unit courseModels.Unit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.UnitID, false, true).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	var progress *courseModels.UnitProgress
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		progress, txErr = recordUnitProgress(tx, &enrollment, &unit, progressUpdate{
			Status:       reqData.Status,
			Score:        reqData.Score,
			TimeDeltaSec: reqData.TimeSpentSec,
		})
		return txErr
	})
	if err != nil {
		if errors.Is(err, errUnitNotInCourse) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unit does not belong to this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	if enrollment.Status == courseModels.ProgressCompleted {
		go notifyCourseCompleted(enrollment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded successfully!", fiber.Map{
		"unit_progress": progress,
		"enrollment":    enrollment,
	})
}

// GetCourseProgress returns the caller's progress in a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var unitProgress []courseModels.UnitProgress
	if err := database.Database.Db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).Find(&unitProgress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":    enrollment,
		"unit_progress": unitProgress,
	})
}
