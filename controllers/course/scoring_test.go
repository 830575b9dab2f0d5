package controllers

import (
	"testing"

	courseModels "lms/models/course"
)

func TestIsAnswerCorrect(t *testing.T) {
	tests := []struct {
		name          string
		userAnswer    string
		correctAnswer string
		want          bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"case insensitive", "PARIS", "paris", true},
		{"surrounding whitespace", "  paris  ", "Paris", true},
		{"wrong answer", "London", "Paris", false},
		{"empty answer never matches", "", "Paris", false},
		{"whitespace-only answer never matches", "   ", "Paris", false},
		{"empty correct answer never matches", "Paris", "", false},
		{"first alternative", "true", "true,yes", true},
		{"second alternative", "yes", "true,yes", true},
		{"alternative with spaces", "yes", "true, yes", true},
		{"not among alternatives", "no", "true,yes", false},
		{"empty alternative is skipped", "", "true,,yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAnswerCorrect(tt.userAnswer, tt.correctAnswer); got != tt.want {
				t.Errorf("isAnswerCorrect(%q, %q) = %v, want %v", tt.userAnswer, tt.correctAnswer, got, tt.want)
			}
		})
	}
}

func TestScoreAnswers(t *testing.T) {
	questions := []courseModels.Question{
		{Text: "Q1", CorrectAnswer: "a", Points: 2},
		{Text: "Q2", CorrectAnswer: "b", Points: 3},
		{Text: "Q3", CorrectAnswer: "c", Points: 5},
	}
	questions[0].ID = 1
	questions[1].ID = 2
	questions[2].ID = 3

	t.Run("partial credit by question weight", func(t *testing.T) {
		earned, total, rows := scoreAnswers(questions, map[uint]string{
			1: "a",
			2: "wrong",
			3: "c",
		})
		if earned != 7 {
			t.Errorf("earned = %d, want 7", earned)
		}
		if total != 10 {
			t.Errorf("total = %d, want 10", total)
		}
		if len(rows) != 3 {
			t.Fatalf("len(rows) = %d, want 3", len(rows))
		}
		if !rows[0].IsCorrect || rows[0].PointsEarned != 2 {
			t.Errorf("row 0 = %+v, want correct with 2 points", rows[0])
		}
		if rows[1].IsCorrect || rows[1].PointsEarned != 0 {
			t.Errorf("row 1 = %+v, want incorrect with 0 points", rows[1])
		}
	})

	t.Run("unanswered questions count toward total", func(t *testing.T) {
		earned, total, rows := scoreAnswers(questions, map[uint]string{1: "a"})
		if earned != 2 || total != 10 {
			t.Errorf("earned/total = %d/%d, want 2/10", earned, total)
		}
		if len(rows) != 1 {
			t.Errorf("len(rows) = %d, want 1", len(rows))
		}
	})

	t.Run("answers for unknown questions are ignored", func(t *testing.T) {
		earned, total, rows := scoreAnswers(questions, map[uint]string{99: "a"})
		if earned != 0 || total != 10 {
			t.Errorf("earned/total = %d/%d, want 0/10", earned, total)
		}
		if len(rows) != 0 {
			t.Errorf("len(rows) = %d, want 0", len(rows))
		}
	})

	t.Run("no questions", func(t *testing.T) {
		earned, total, rows := scoreAnswers(nil, map[uint]string{1: "a"})
		if earned != 0 || total != 0 || len(rows) != 0 {
			t.Errorf("got %d/%d with %d rows, want all zero", earned, total, len(rows))
		}
	})
}

func TestPercentScore(t *testing.T) {
	tests := []struct {
		name   string
		earned int
		total  int
		want   int
	}{
		{"full marks", 10, 10, 100},
		{"zero earned", 0, 10, 0},
		{"rounds half up", 1, 8, 13},
		{"rounds down", 1, 7, 14},
		{"two thirds", 2, 3, 67},
		{"zero total", 5, 0, 0},
		{"negative total", 5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentScore(tt.earned, tt.total); got != tt.want {
				t.Errorf("percentScore(%d, %d) = %d, want %d", tt.earned, tt.total, got, tt.want)
			}
		})
	}
}
