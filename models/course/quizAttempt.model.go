package course

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt represents one instance of a learner taking a quiz unit.
// At most one attempt per (enrollment, unit) may have a null CompletedAt;
// a set CompletedAt is terminal.
type QuizAttempt struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"index;not null"`
	UnitID       uint       `json:"unit_id" gorm:"index;not null"`
	Score        *int       `json:"score"`  // 0-100, set on submission
	Passed       *bool      `json:"passed"` // set on submission
	StartedAt    time.Time  `json:"started_at" gorm:"not null"`
	CompletedAt  *time.Time `json:"completed_at"`
	IsDeleted    bool       `gorm:"default:false"`
}

// QuizAnswer stores one scored answer of an attempt. The full answer set is
// replaced on every submission, never merged.
type QuizAnswer struct {
	gorm.Model
	AttemptID    uint   `json:"attempt_id" gorm:"index;not null"`
	QuestionID   uint   `json:"question_id" gorm:"index;not null"`
	AnswerText   string `json:"answer_text" gorm:"type:text"`
	IsCorrect    bool   `json:"is_correct" gorm:"default:false"`
	PointsEarned int    `json:"points_earned" gorm:"default:0"`
	IsDeleted    bool   `gorm:"default:false"`
}
