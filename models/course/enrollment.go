package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment / unit progress statuses
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// Enrollment tracks a user's enrollment in a course with aggregate progress.
// Unique per (user, course); Progress is always round(100*completed/total)
// as of the last recompute.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Status      string     `json:"status" gorm:"default:'NOT_STARTED'"` // NOT_STARTED, IN_PROGRESS, COMPLETED
	Progress    int        `json:"progress" gorm:"default:0"`           // completion percentage (0-100)
	StartedAt   *time.Time `json:"started_at"`                          // set once, on first progress
	CompletedAt *time.Time `json:"completed_at"`                        // set once, when progress first reaches 100
	IsDeleted   bool       `gorm:"default:false"`
}

// UnitProgress tracks a learner's progress in a single unit.
// Unique per (enrollment, unit).
type UnitProgress struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"index:idx_unit_progress_enrollment_unit;not null"`
	UnitID       uint       `json:"unit_id" gorm:"index:idx_unit_progress_enrollment_unit;not null"`
	Status       string     `json:"status" gorm:"default:'NOT_STARTED'"`
	Score        *int       `json:"score"` // quiz score, when the unit is a quiz
	TimeSpentSec int        `json:"time_spent_sec" gorm:"default:0"`
	CompletedAt  *time.Time `json:"completed_at"` // set once, on first completion
	IsDeleted    bool       `gorm:"default:false"`
}
