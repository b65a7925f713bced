// Package domain holds intake domain types shared between the repository
// and service layers.
package domain

import "strings"

// PredicateKind identifies how a conditional question predicate is evaluated.
type PredicateKind string

const (
	// PredicateAnswerContains passes when a prior answer contains a substring.
	PredicateAnswerContains PredicateKind = "answer_contains"
	// PredicateAnswerEquals passes when a prior answer equals a value exactly
	// (case-insensitive).
	PredicateAnswerEquals PredicateKind = "answer_equals"
	// PredicateAnswerMissing passes when a question has no answer yet.
	PredicateAnswerMissing PredicateKind = "answer_missing"
)

// Predicate is a tagged conditional gate on a dynamic question. A nil
// *Predicate means the question is unconditionally eligible. Predicates
// reference prior answers by question key, never by free-text expression.
type Predicate struct {
	Kind        PredicateKind
	QuestionKey string
	Value       string
}

// Eval evaluates the predicate against the accumulated answers, keyed by
// question key. Unknown kinds evaluate to false so that malformed rows can
// never unlock a question.
func (p *Predicate) Eval(answers map[string]string) bool {
	if p == nil {
		return true
	}

	answer, ok := answers[p.QuestionKey]

	switch p.Kind {
	case PredicateAnswerContains:
		return ok && strings.Contains(strings.ToLower(answer), strings.ToLower(p.Value))
	case PredicateAnswerEquals:
		return ok && strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(p.Value))
	case PredicateAnswerMissing:
		return !ok
	default:
		return false
	}
}
