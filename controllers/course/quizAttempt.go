package controllers

import (
	"errors"
	"time"

	pointsController "lms/controllers/points"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	errRetryLimitReached = errors.New("retry limit reached for this quiz")
	errAlreadyCompleted  = errors.New("attempt already completed")
)

// submitResult is the score breakdown returned after a submission
type submitResult struct {
	Score         int  `json:"score"`
	Passed        bool `json:"passed"`
	EarnedPoints  int  `json:"earnedPoints"`
	TotalPoints   int  `json:"totalPoints"`
	PointsAwarded int  `json:"pointsAwarded"`
	LeveledUp     bool `json:"leveledUp"`
}

// startOrResumeAttempt returns the open attempt for (enrollment, unit) if one
// exists, otherwise creates a new one. Re-entering a quiz page is idempotent:
// no duplicate attempt rows. Must run inside a transaction.
func startOrResumeAttempt(tx *gorm.DB, enrollment *courseModels.Enrollment, unit *courseModels.Unit) (*courseModels.QuizAttempt, bool, error) {
	// Lock the enrollment row so concurrent starts for the same quiz
	// serialize instead of both creating an attempt
	if err := database.LockForUpdate(tx).
		Where("id = ?", enrollment.ID).
		First(enrollment).Error; err != nil {
		return nil, false, err
	}

	var existing courseModels.QuizAttempt
	err := tx.Where("enrollment_id = ? AND unit_id = ? AND completed_at IS NULL AND is_deleted = ?",
		enrollment.ID, unit.ID, false).
		First(&existing).Error
	if err == nil {
		return &existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	settings := unit.ParseSettings()
	if settings.MaxRetries != courseModels.UnlimitedRetries {
		var completedCount int64
		if err := tx.Model(&courseModels.QuizAttempt{}).
			Where("enrollment_id = ? AND unit_id = ? AND completed_at IS NOT NULL AND is_deleted = ?",
				enrollment.ID, unit.ID, false).
			Count(&completedCount).Error; err != nil {
			return nil, false, err
		}
		if completedCount >= int64(settings.MaxRetries) {
			return nil, false, errRetryLimitReached
		}
	}

	attempt := courseModels.QuizAttempt{
		EnrollmentID: enrollment.ID,
		UnitID:       unit.ID,
		StartedAt:    time.Now(),
	}
	if err := tx.Create(&attempt).Error; err != nil {
		return nil, false, err
	}
	return &attempt, false, nil
}

// completeAttempt scores and finalizes an attempt. The completion write is a
// conditional update guarded on the open state, so a concurrent submission
// of the same attempt fails instead of double-awarding. On pass the unit is
// marked complete, cascading into the enrollment recompute. Must run inside
// a transaction.
func completeAttempt(tx *gorm.DB, attempt *courseModels.QuizAttempt, enrollment *courseModels.Enrollment, unit *courseModels.Unit, answers map[uint]string) (*submitResult, error) {
	if attempt.CompletedAt != nil {
		return nil, errAlreadyCompleted
	}

	var questions []courseModels.Question
	if err := tx.Where("unit_id = ? AND is_deleted = ?", unit.ID, false).
		Order("order_index asc").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	earned, total, answerRows := scoreAnswers(questions, answers)
	score := percentScore(earned, total)

	settings := unit.ParseSettings()
	passed := score >= settings.PassThreshold

	now := time.Now()
	result := tx.Model(&courseModels.QuizAttempt{}).
		Where("id = ? AND completed_at IS NULL", attempt.ID).
		Updates(map[string]interface{}{
			"score":        score,
			"passed":       passed,
			"completed_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race against another submission of the same attempt
		return nil, errAlreadyCompleted
	}

	attempt.Score = &score
	attempt.Passed = &passed
	attempt.CompletedAt = &now

	// Full replace: prior partial-save answers are discarded
	if err := tx.Where("attempt_id = ?", attempt.ID).Delete(&courseModels.QuizAnswer{}).Error; err != nil {
		return nil, err
	}
	for i := range answerRows {
		answerRows[i].AttemptID = attempt.ID
	}
	if len(answerRows) > 0 {
		if err := tx.Create(&answerRows).Error; err != nil {
			return nil, err
		}
	}

	res := &submitResult{
		Score:        score,
		Passed:       passed,
		EarnedPoints: earned,
		TotalPoints:  total,
	}

	if !passed {
		return res, nil
	}

	award, err := pointsController.AwardPoints(tx, enrollment.UserID, settings.PointsPass,
		models.PointsReasonQuizPass, "Passed quiz: "+unit.Title, 0)
	if err != nil {
		return nil, err
	}
	res.PointsAwarded += settings.PointsPass
	res.LeveledUp = award.LeveledUp

	if score == 100 {
		award, err = pointsController.AwardPoints(tx, enrollment.UserID, settings.PointsPerfect,
			models.PointsReasonQuizPerfect, "Perfect score on quiz: "+unit.Title, 0)
		if err != nil {
			return nil, err
		}
		res.PointsAwarded += settings.PointsPerfect
		res.LeveledUp = res.LeveledUp || award.LeveledUp
	}

	completed := courseModels.ProgressCompleted
	if _, err := recordUnitProgress(tx, enrollment, unit, progressUpdate{
		Status: &completed,
		Score:  &score,
	}); err != nil {
		return nil, err
	}

	return res, nil
}

// StartQuizAttempt handles POST /quiz-attempts
func StartQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedAttemptStart").(*struct {
		UnitID uint `json:"unit_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var unit courseModels.Unit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.UnitID, false, true).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if unit.ContentType != courseModels.UnitTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unit is not a quiz!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, unit.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var attempt *courseModels.QuizAttempt
	var resumed bool
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		attempt, resumed, txErr = startOrResumeAttempt(tx, &enrollment, &unit)
		return txErr
	})
	if err != nil {
		if errors.Is(err, errRetryLimitReached) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Retry limit reached for this quiz!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start attempt!", nil)
	}

	if resumed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt resumed!", attempt)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt started!", attempt)
}

// SubmitQuizAttempt handles POST /quiz-attempts/:id
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	attemptID := c.Locals("attemptID").(int)

	reqData, ok := c.Locals("validatedAttemptSubmit").(*struct {
		Answers []struct {
			QuestionID uint   `json:"question_id"`
			Answer     string `json:"answer"`
		} `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var attempt courseModels.QuizAttempt
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", attemptID, false).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", attempt.EnrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	// Only the attempt's owning learner may submit it
	if enrollment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not your attempt!", nil)
	}

	var unit courseModels.Unit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", attempt.UnitID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	answers := make(map[uint]string, len(reqData.Answers))
	for _, a := range reqData.Answers {
		answers[a.QuestionID] = a.Answer
	}

	var result *submitResult
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = completeAttempt(tx, &attempt, &enrollment, &unit, answers)
		return txErr
	})
	if err != nil {
		if errors.Is(err, errAlreadyCompleted) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Attempt already completed!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	if result.Passed && enrollment.Status == courseModels.ProgressCompleted {
		go notifyCourseCompleted(enrollment)
	}
	if result.LeveledUp {
		go utils.NotifyLevelUp(enrollment.UserID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted!", fiber.Map{
		"attempt":   attempt,
		"breakdown": result,
	})
}

// notifyCourseCompleted fires the completion webhook; failures only log
func notifyCourseCompleted(enrollment courseModels.Enrollment) {
	utils.NotifyCourseCompleted(enrollment.UserID, enrollment.CourseID)
}
