package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types
const (
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeFillBlank      = "FILL_BLANK"
	QuestionTypeMatching       = "MATCHING"
)

// Question represents a quiz question belonging to a unit. CorrectAnswer may
// hold comma-separated accepted alternatives (mainly for FILL_BLANK).
type Question struct {
	gorm.Model
	CourseID      uint           `json:"course_id" gorm:"index;not null"`
	UnitID        uint           `json:"unit_id" gorm:"index;not null"`
	QuestionType  string         `json:"question_type" gorm:"default:'MULTIPLE_CHOICE'"`
	Text          string         `json:"text" gorm:"type:text"`
	Options       datatypes.JSON `json:"options"` // choice labels / matching pairs
	CorrectAnswer string         `json:"correct_answer,omitempty" gorm:"type:text"`
	Points        int            `json:"points" gorm:"default:1"` // weight
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}
