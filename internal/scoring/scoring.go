// Package scoring computes quiz results from a set of answers. Everything here
// is a pure function of its inputs.
package scoring

import "github.com/abhisek/quizzer/internal/bank"

// Unanswered marks a question the learner never answered. It never matches a
// correct option.
const Unanswered = -1

// Result is the outcome of scoring one attempt.
type Result struct {
	Score          int
	TotalQuestions int
	Percentage     int
	// Correct holds per-question correctness, parallel to the questions.
	Correct []bool
}

// Score counts the answers that equal their question's correct option.
// Missing trailing answers count as unanswered.
func Score(answers []int, questions []bank.Question) Result {
	r := Result{
		TotalQuestions: len(questions),
		Correct:        make([]bool, len(questions)),
	}
	for i, q := range questions {
		if i >= len(answers) || answers[i] == Unanswered {
			continue
		}
		if q.IsCorrect(answers[i]) {
			r.Correct[i] = true
			r.Score++
		}
	}
	r.Percentage = Percentage(r.Score, r.TotalQuestions)
	return r
}

// Percentage returns 100*score/total rounded half-up to an integer, so
// 1/8 (12.5%) is 13 and 1/3 is 33. A zero total yields 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	// Integer form of floor(100*score/total + 0.5).
	return (200*score + total) / (2 * total)
}
