package controllers

import (
	"fmt"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database for one test. The shared-cache
// name keeps all pooled connections on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	return db
}

// seedCourseWithUnits creates a learner enrolled in a course with the given
// number of published text units.
func seedCourseWithUnits(t *testing.T, db *gorm.DB, unitCount int) (*courseModels.Enrollment, []courseModels.Unit) {
	t.Helper()

	user := models.User{Name: "Learner", Email: fmt.Sprintf("%s@test.local", t.Name()), Role: "LEARNER"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	course := courseModels.Course{Title: "Test Course", Status: "ACTIVE", IsPublished: true}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	units := make([]courseModels.Unit, unitCount)
	for i := range units {
		units[i] = courseModels.Unit{
			CourseID:    course.ID,
			Title:       fmt.Sprintf("Unit %d", i+1),
			ContentType: courseModels.UnitTypeText,
			OrderIndex:  i,
			IsPublished: true,
		}
		if err := db.Create(&units[i]).Error; err != nil {
			t.Fatalf("failed to create unit: %v", err)
		}
	}

	enrollment := courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   courseModels.ProgressNotStarted,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("failed to create enrollment: %v", err)
	}

	return &enrollment, units
}

func completeUnit(t *testing.T, db *gorm.DB, enrollment *courseModels.Enrollment, unit *courseModels.Unit) *courseModels.UnitProgress {
	t.Helper()

	completed := courseModels.ProgressCompleted
	var progress *courseModels.UnitProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		progress, txErr = recordUnitProgress(tx, enrollment, unit, progressUpdate{Status: &completed})
		return txErr
	})
	if err != nil {
		t.Fatalf("failed to complete unit %d: %v", unit.ID, err)
	}
	return progress
}

func TestRecordUnitProgressAggregation(t *testing.T) {
	db := setupTestDB(t)
	enrollment, units := seedCourseWithUnits(t, db, 4)

	for i := 0; i < 3; i++ {
		completeUnit(t, db, enrollment, &units[i])
	}

	if enrollment.Progress != 75 {
		t.Errorf("progress after 3 of 4 units = %d, want 75", enrollment.Progress)
	}
	if enrollment.Status != courseModels.ProgressInProgress {
		t.Errorf("status = %q, want %q", enrollment.Status, courseModels.ProgressInProgress)
	}
	if enrollment.StartedAt == nil {
		t.Error("StartedAt not set after first completion")
	}
	if enrollment.CompletedAt != nil {
		t.Error("CompletedAt set before all units completed")
	}

	completeUnit(t, db, enrollment, &units[3])

	if enrollment.Progress != 100 {
		t.Errorf("progress after all units = %d, want 100", enrollment.Progress)
	}
	if enrollment.Status != courseModels.ProgressCompleted {
		t.Errorf("status = %q, want %q", enrollment.Status, courseModels.ProgressCompleted)
	}
	if enrollment.CompletedAt == nil {
		t.Fatal("CompletedAt not set at 100%")
	}
}

func TestRecordUnitProgressIdempotentCompletion(t *testing.T) {
	db := setupTestDB(t)
	enrollment, units := seedCourseWithUnits(t, db, 2)

	completeUnit(t, db, enrollment, &units[0])
	completeUnit(t, db, enrollment, &units[1])
	firstCompletedAt := *enrollment.CompletedAt

	// Re-completing an already completed unit must not move timestamps
	progress := completeUnit(t, db, enrollment, &units[1])

	if enrollment.Progress != 100 {
		t.Errorf("progress = %d, want 100", enrollment.Progress)
	}
	if !enrollment.CompletedAt.Equal(firstCompletedAt) {
		t.Errorf("enrollment CompletedAt moved from %v to %v", firstCompletedAt, enrollment.CompletedAt)
	}
	if progress.CompletedAt == nil {
		t.Fatal("unit progress CompletedAt not set")
	}

	var count int64
	db.Model(&courseModels.UnitProgress{}).
		Where("enrollment_id = ? AND unit_id = ?", enrollment.ID, units[1].ID).
		Count(&count)
	if count != 1 {
		t.Errorf("unit progress rows = %d, want 1", count)
	}
}

func TestRecordUnitProgressTimeAccumulates(t *testing.T) {
	db := setupTestDB(t)
	enrollment, units := seedCourseWithUnits(t, db, 1)

	for _, delta := range []int{30, 45, 15} {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, txErr := recordUnitProgress(tx, enrollment, &units[0], progressUpdate{TimeDeltaSec: delta})
			return txErr
		})
		if err != nil {
			t.Fatalf("failed to record time: %v", err)
		}
	}

	var progress courseModels.UnitProgress
	if err := db.Where("enrollment_id = ? AND unit_id = ?", enrollment.ID, units[0].ID).First(&progress).Error; err != nil {
		t.Fatalf("failed to load progress: %v", err)
	}
	if progress.TimeSpentSec != 90 {
		t.Errorf("TimeSpentSec = %d, want 90", progress.TimeSpentSec)
	}
	if progress.Status != courseModels.ProgressInProgress {
		t.Errorf("status = %q, want %q", progress.Status, courseModels.ProgressInProgress)
	}
}

func TestRecordUnitProgressScoreStored(t *testing.T) {
	db := setupTestDB(t)
	enrollment, units := seedCourseWithUnits(t, db, 1)

	score := 85
	completed := courseModels.ProgressCompleted
	err := db.Transaction(func(tx *gorm.DB) error {
		_, txErr := recordUnitProgress(tx, enrollment, &units[0], progressUpdate{Status: &completed, Score: &score})
		return txErr
	})
	if err != nil {
		t.Fatalf("failed to record progress: %v", err)
	}

	var progress courseModels.UnitProgress
	if err := db.Where("enrollment_id = ? AND unit_id = ?", enrollment.ID, units[0].ID).First(&progress).Error; err != nil {
		t.Fatalf("failed to load progress: %v", err)
	}
	if progress.Score == nil || *progress.Score != 85 {
		t.Errorf("score = %v, want 85", progress.Score)
	}
}

func TestRecordUnitProgressRejectsForeignUnit(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 1)

	otherCourse := courseModels.Course{Title: "Other Course", IsPublished: true}
	if err := db.Create(&otherCourse).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	foreignUnit := courseModels.Unit{CourseID: otherCourse.ID, Title: "Foreign", ContentType: courseModels.UnitTypeText, IsPublished: true}
	if err := db.Create(&foreignUnit).Error; err != nil {
		t.Fatalf("failed to create unit: %v", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		_, txErr := recordUnitProgress(tx, enrollment, &foreignUnit, progressUpdate{TimeDeltaSec: 10})
		return txErr
	})
	if err != errUnitNotInCourse {
		t.Errorf("err = %v, want errUnitNotInCourse", err)
	}
}

func TestRecomputeProgressZeroUnits(t *testing.T) {
	db := setupTestDB(t)
	enrollment, _ := seedCourseWithUnits(t, db, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		return recomputeEnrollmentProgress(tx, enrollment)
	})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	if enrollment.Progress != 0 {
		t.Errorf("progress = %d, want 0", enrollment.Progress)
	}
	if enrollment.Status != courseModels.ProgressNotStarted {
		t.Errorf("status = %q, want %q", enrollment.Status, courseModels.ProgressNotStarted)
	}
}

func TestRecomputeProgressIgnoresUnpublishedUnits(t *testing.T) {
	db := setupTestDB(t)
	enrollment, units := seedCourseWithUnits(t, db, 2)

	draft := courseModels.Unit{CourseID: enrollment.CourseID, Title: "Draft", ContentType: courseModels.UnitTypeText, IsPublished: false}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("failed to create draft unit: %v", err)
	}

	completeUnit(t, db, enrollment, &units[0])
	completeUnit(t, db, enrollment, &units[1])

	if enrollment.Progress != 100 {
		t.Errorf("progress = %d, want 100 (draft units excluded)", enrollment.Progress)
	}
	if enrollment.Status != courseModels.ProgressCompleted {
		t.Errorf("status = %q, want %q", enrollment.Status, courseModels.ProgressCompleted)
	}
}
