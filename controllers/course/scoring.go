package controllers

import (
	"math"
	"strings"

	courseModels "lms/models/course"
)

// isAnswerCorrect reports whether a learner's answer matches the stored
// correct answer. Both sides are trimmed and lowercased; the correct answer
// may hold comma-separated accepted alternatives. Empty input on either side
// never matches.
func isAnswerCorrect(userAnswer, correctAnswer string) bool {
	normalized := strings.ToLower(strings.TrimSpace(userAnswer))
	if normalized == "" {
		return false
	}

	for _, alt := range strings.Split(correctAnswer, ",") {
		alt = strings.ToLower(strings.TrimSpace(alt))
		if alt != "" && alt == normalized {
			return true
		}
	}
	return false
}

// scoreAnswers scores a submission against the unit's questions, weighted by
// each question's points. Submitted answers that don't match any question of
// the unit are ignored; unanswered questions still count toward the total.
func scoreAnswers(questions []courseModels.Question, answers map[uint]string) (earned int, total int, rows []courseModels.QuizAnswer) {
	for _, q := range questions {
		total += q.Points

		answerText, ok := answers[q.ID]
		if !ok {
			continue
		}

		correct := isAnswerCorrect(answerText, q.CorrectAnswer)
		pointsEarned := 0
		if correct {
			pointsEarned = q.Points
			earned += pointsEarned
		}

		rows = append(rows, courseModels.QuizAnswer{
			QuestionID:   q.ID,
			AnswerText:   answerText,
			IsCorrect:    correct,
			PointsEarned: pointsEarned,
		})
	}
	return earned, total, rows
}

// percentScore converts earned/total points to a rounded 0-100 score.
// A unit with zero points defined scores 0.
func percentScore(earned, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(earned) / float64(total)))
}
