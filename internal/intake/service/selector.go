package service

import (
	"scopeworks_backend/internal/intake/repository"
)

// NextEligible returns the next question the customer should answer: the
// lowest-sequence question whose condition passes against the latest
// answers and which has not been answered yet. The questions slice must
// already be in selection order. Returns nil when no eligible question
// remains, meaning the session is ready for scope generation.
func NextEligible(questions []repository.Question, answers map[string]string) *repository.Question {
	for i := range questions {
		q := &questions[i]
		if _, answered := answers[q.QuestionKey]; answered {
			continue
		}
		if !q.Condition.Eval(answers) {
			continue
		}
		return q
	}
	return nil
}

// MissingRequired lists the question texts of required-for-scope questions
// that are eligible but unanswered. Used to surface clarification entries
// in a generated scope.
func MissingRequired(questions []repository.Question, answers map[string]string) []string {
	var missing []string
	for i := range questions {
		q := &questions[i]
		if !q.RequiredForScope {
			continue
		}
		if _, answered := answers[q.QuestionKey]; answered {
			continue
		}
		if !q.Condition.Eval(answers) {
			continue
		}
		missing = append(missing, q.QuestionText)
	}
	return missing
}
