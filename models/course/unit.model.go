package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unit content types
const (
	UnitTypeText  = "TEXT"
	UnitTypeVideo = "VIDEO"
	UnitTypeQuiz  = "QUIZ"
)

// Quiz settings defaults
const (
	DefaultPassThreshold = 70
	DefaultPointsPass    = 25
	DefaultPointsPerfect = 50
	UnlimitedRetries     = -1
)

// Unit represents an atomic piece of course content
type Unit struct {
	gorm.Model
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ContentType string         `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, QUIZ
	TextContent string         `json:"text_content" gorm:"type:text"`      // For TEXT type
	VideoURL    string         `json:"video_url"`                          // For VIDEO type
	OrderIndex  int            `json:"order_index" gorm:"default:0"`       // Order within course
	Settings    datatypes.JSON `json:"settings"`                           // Per-unit quiz settings blob
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}

// QuizSettings is the typed form of the per-unit settings blob
type QuizSettings struct {
	TimeLimitMinutes int `json:"time_limit_minutes"` // 0 means no limit; enforced client-side
	MaxRetries       int `json:"max_retries"`        // -1 means unlimited
	PassThreshold    int `json:"pass_threshold"`     // percentage 0-100
	PointsPass       int `json:"points_pass"`
	PointsPerfect    int `json:"points_perfect"`
}

// ParseSettings decodes the unit's settings blob. Malformed or missing JSON
// falls back to defaults rather than failing the request.
func (u *Unit) ParseSettings() QuizSettings {
	settings := QuizSettings{
		MaxRetries:    UnlimitedRetries,
		PassThreshold: DefaultPassThreshold,
		PointsPass:    DefaultPointsPass,
		PointsPerfect: DefaultPointsPerfect,
	}

	if len(u.Settings) == 0 {
		return settings
	}

	var raw struct {
		TimeLimitMinutes *int `json:"time_limit_minutes"`
		MaxRetries       *int `json:"max_retries"`
		PassThreshold    *int `json:"pass_threshold"`
		PointsPass       *int `json:"points_pass"`
		PointsPerfect    *int `json:"points_perfect"`
	}
	if err := json.Unmarshal(u.Settings, &raw); err != nil {
		return settings
	}

	if raw.TimeLimitMinutes != nil && *raw.TimeLimitMinutes > 0 {
		settings.TimeLimitMinutes = *raw.TimeLimitMinutes
	}
	if raw.MaxRetries != nil && *raw.MaxRetries >= 0 {
		settings.MaxRetries = *raw.MaxRetries
	}
	if raw.PassThreshold != nil && *raw.PassThreshold >= 0 && *raw.PassThreshold <= 100 {
		settings.PassThreshold = *raw.PassThreshold
	}
	if raw.PointsPass != nil && *raw.PointsPass >= 0 {
		settings.PointsPass = *raw.PointsPass
	}
	if raw.PointsPerfect != nil && *raw.PointsPerfect >= 0 {
		settings.PointsPerfect = *raw.PointsPerfect
	}

	return settings
}
