package controllers

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// seedQuiz adds a published quiz unit with two questions to the enrollment's
// course. Question 1 is worth 1 point, question 2 is worth 3.
func seedQuiz(t *testing.T, db *gorm.DB, enrollment *courseModels.Enrollment, settings string) (*courseModels.Unit, []courseModels.Question) {
	t.Helper()

	unit := courseModels.Unit{
		CourseID:    enrollment.CourseID,
		Title:       "Final Quiz",
		ContentType: courseModels.UnitTypeQuiz,
		IsPublished: true,
	}
	if settings != "" {
		unit.Settings = datatypes.JSON(settings)
	}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to create quiz unit: %v", err)
	}

	questions := []courseModels.Question{
		{
			CourseID:      enrollment.CourseID,
			UnitID:        unit.ID,
			QuestionType:  courseModels.QuestionTypeTrueFalse,
			Text:          "The sky is blue.",
			CorrectAnswer: "true",
			Points:        1,
			OrderIndex:    0,
		},
		{
			CourseID:      enrollment.CourseID,
			UnitID:        unit.ID,
			QuestionType:  courseModels.QuestionTypeFillBlank,
			Text:          "Capital of France?",
			CorrectAnswer: "paris",
			Points:        3,
			OrderIndex:    1,
		},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			t.Fatalf("failed to create question: %v", err)
		}
	}

	return &unit, questions
}

func startAttempt(t *testing.T, db *gorm.DB, enrollment *courseModels.Enrollment, unit *courseModels.Unit) (*courseModels.QuizAttempt, bool) {
	t.Helper()

	var attempt *courseModels.QuizAttempt
	var resumed bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		attempt, resumed, txErr = startOrResumeAttempt(tx, enrollment, unit)
		return txErr
	})
	if err != nil {
		t.Fatalf("failed to start attempt: %v", err)
	}
	return attempt, resumed
}

func submitAttempt(t *testing.T, db *gorm.DB, attempt *courseModels.QuizAttempt, enrollment *courseModels.Enrollment, unit *courseModels.Unit, answers map[uint]string) *submitResult {
	t.Helper()

	var result *submitResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = completeAttempt(tx, attempt, enrollment, unit, answers)
		return txErr
	})
	if err != nil {
		t.Fatalf("failed to submit attempt: %v", err)
	}
	return result
}

func TestStartAttemptIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 0)
	unit, _ := seedQuiz(t, db, enrollment, "")

	first, resumed := startAttempt(t, db, enrollment, unit)
	if resumed {
		t.Error("first start reported resumed")
	}
	if first.CompletedAt != nil {
		t.Error("new attempt already completed")
	}

	second, resumed := startAttempt(t, db, enrollment, unit)
	if !resumed {
		t.Error("second start did not resume")
	}
	if second.ID != first.ID {
		t.Errorf("second start created attempt %d, want %d", second.ID, first.ID)
	}

	var count int64
	db.Model(&courseModels.QuizAttempt{}).
		Where("enrollment_id = ? AND unit_id = ?", enrollment.ID, unit.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("attempt rows = %d, want 1", count)
	}
}

func TestStartAttemptRetryLimit(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 0)
	unit, questions := seedQuiz(t, db, enrollment, `{"max_retries": 1}`)

	attempt, _ := startAttempt(t, db, enrollment, unit)
	submitAttempt(t, db, attempt, enrollment, unit, map[uint]string{
		questions[0].ID: "true",
		questions[1].ID: "paris",
	})

	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, txErr := startOrResumeAttempt(tx, enrollment, unit)
		return txErr
	})
	if err != errRetryLimitReached {
		t.Errorf("err = %v, want errRetryLimitReached", err)
	}
}

func TestSubmitAttemptPassAwardsPoints(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 0)
	unit, questions := seedQuiz(t, db, enrollment, "")

	attempt, _ := startAttempt(t, db, enrollment, unit)
	result := submitAttempt(t, db, attempt, enrollment, unit, map[uint]string{
		questions[0].ID: "TRUE",
		questions[1].ID: " Paris ",
	})

	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
	if !result.Passed {
		t.Error("attempt not marked passed")
	}
	if result.EarnedPoints != 4 || result.TotalPoints != 4 {
		t.Errorf("earned/total = %d/%d, want 4/4", result.EarnedPoints, result.TotalPoints)
	}
	// Pass award plus perfect-score bonus
	if result.PointsAwarded != courseModels.DefaultPointsPass+courseModels.DefaultPointsPerfect {
		t.Errorf("points awarded = %d, want %d", result.PointsAwarded, courseModels.DefaultPointsPass+courseModels.DefaultPointsPerfect)
	}

	var points models.UserPoints
	if err := db.Where("user_id = ?", enrollment.UserID).First(&points).Error; err != nil {
		t.Fatalf("failed to load user points: %v", err)
	}
	if points.TotalPoints != 75 {
		t.Errorf("total points = %d, want 75", points.TotalPoints)
	}

	var txnCount int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", enrollment.UserID).Count(&txnCount)
	if txnCount != 2 {
		t.Errorf("points transactions = %d, want 2", txnCount)
	}

	var progress courseModels.UnitProgress
	if err := db.Where("enrollment_id = ? AND unit_id = ?", enrollment.ID, unit.ID).First(&progress).Error; err != nil {
		t.Fatalf("failed to load unit progress: %v", err)
	}
	if progress.Status != courseModels.ProgressCompleted {
		t.Errorf("unit progress status = %q, want %q", progress.Status, courseModels.ProgressCompleted)
	}
	if progress.Score == nil || *progress.Score != 100 {
		t.Errorf("unit progress score = %v, want 100", progress.Score)
	}

	// The quiz is the course's only unit, so passing completes the enrollment
	if enrollment.Progress != 100 || enrollment.Status != courseModels.ProgressCompleted {
		t.Errorf("enrollment = %d%% %q, want 100%% COMPLETED", enrollment.Progress, enrollment.Status)
	}

	var answerCount int64
	db.Model(&courseModels.QuizAnswer{}).Where("attempt_id = ?", attempt.ID).Count(&answerCount)
	if answerCount != 2 {
		t.Errorf("answer rows = %d, want 2", answerCount)
	}
}

func TestSubmitAttemptFailLeavesProgressAlone(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 0)
	unit, questions := seedQuiz(t, db, enrollment, "")

	attempt, _ := startAttempt(t, db, enrollment, unit)
	result := submitAttempt(t, db, attempt, enrollment, unit, map[uint]string{
		questions[0].ID: "false",
		questions[1].ID: "london",
	})

	if result.Score != 0 || result.Passed {
		t.Errorf("result = %d%% passed=%v, want 0%% failed", result.Score, result.Passed)
	}

	var pointsCount int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", enrollment.UserID).Count(&pointsCount)
	if pointsCount != 0 {
		t.Errorf("points transactions = %d, want 0 on fail", pointsCount)
	}

	var progressCount int64
	db.Model(&courseModels.UnitProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&progressCount)
	if progressCount != 0 {
		t.Errorf("unit progress rows = %d, want 0 on fail", progressCount)
	}
}

func TestSubmitAttemptRejectsDoubleCompletion(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 0)
	unit, questions := seedQuiz(t, db, enrollment, "")

	attempt, _ := startAttempt(t, db, enrollment, unit)
	submitAttempt(t, db, attempt, enrollment, unit, map[uint]string{
		questions[0].ID: "true",
		questions[1].ID: "paris",
	})

	err := db.Transaction(func(tx *gorm.DB) error {
		_, txErr := completeAttempt(tx, attempt, enrollment, unit, map[uint]string{})
		return txErr
	})
	if err != errAlreadyCompleted {
		t.Errorf("err = %v, want errAlreadyCompleted", err)
	}

	// A stale in-memory attempt must still lose against the database guard
	stale := courseModels.QuizAttempt{EnrollmentID: enrollment.ID, UnitID: unit.ID}
	stale.ID = attempt.ID
	err = db.Transaction(func(tx *gorm.DB) error {
		_, txErr := completeAttempt(tx, &stale, enrollment, unit, map[uint]string{})
		return txErr
	})
	if err != errAlreadyCompleted {
		t.Errorf("stale submit err = %v, want errAlreadyCompleted", err)
	}

	var points models.UserPoints
	if err := db.Where("user_id = ?", enrollment.UserID).First(&points).Error; err != nil {
		t.Fatalf("failed to load user points: %v", err)
	}
	if points.TotalPoints != 75 {
		t.Errorf("total points = %d after rejected resubmits, want 75", points.TotalPoints)
	}
}

func TestSubmitAttemptHonorsCustomPassThreshold(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 0)
	unit, questions := seedQuiz(t, db, enrollment, `{"pass_threshold": 80, "points_pass": 10}`)

	attempt, _ := startAttempt(t, db, enrollment, unit)
	// 3 of 4 points is 75%, under the custom 80% bar
	result := submitAttempt(t, db, attempt, enrollment, unit, map[uint]string{
		questions[0].ID: "false",
		questions[1].ID: "paris",
	})

	if result.Score != 75 {
		t.Errorf("score = %d, want 75", result.Score)
	}
	if result.Passed {
		t.Error("attempt passed under custom threshold")
	}
}
