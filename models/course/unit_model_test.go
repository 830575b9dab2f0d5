package course

import (
	"testing"

	"gorm.io/datatypes"
)

func TestParseSettings(t *testing.T) {
	defaults := QuizSettings{
		MaxRetries:    UnlimitedRetries,
		PassThreshold: DefaultPassThreshold,
		PointsPass:    DefaultPointsPass,
		PointsPerfect: DefaultPointsPerfect,
	}

	tests := []struct {
		name     string
		settings string
		want     QuizSettings
	}{
		{"empty blob", "", defaults},
		{"empty object", "{}", defaults},
		{"malformed json falls back", "{not json", defaults},
		{
			"full override",
			`{"time_limit_minutes": 30, "max_retries": 3, "pass_threshold": 80, "points_pass": 10, "points_perfect": 20}`,
			QuizSettings{TimeLimitMinutes: 30, MaxRetries: 3, PassThreshold: 80, PointsPass: 10, PointsPerfect: 20},
		},
		{
			"partial override keeps other defaults",
			`{"pass_threshold": 90}`,
			QuizSettings{MaxRetries: UnlimitedRetries, PassThreshold: 90, PointsPass: DefaultPointsPass, PointsPerfect: DefaultPointsPerfect},
		},
		{
			"zero retries means no retry",
			`{"max_retries": 0}`,
			QuizSettings{MaxRetries: 0, PassThreshold: DefaultPassThreshold, PointsPass: DefaultPointsPass, PointsPerfect: DefaultPointsPerfect},
		},
		{
			"out-of-range threshold ignored",
			`{"pass_threshold": 150}`,
			defaults,
		},
		{
			"negative values ignored",
			`{"max_retries": -5, "points_pass": -1, "time_limit_minutes": -10}`,
			defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := Unit{ContentType: UnitTypeQuiz}
			if tt.settings != "" {
				unit.Settings = datatypes.JSON(tt.settings)
			}
			if got := unit.ParseSettings(); got != tt.want {
				t.Errorf("ParseSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
