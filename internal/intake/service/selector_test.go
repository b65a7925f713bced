package service

import (
	"testing"

	"github.com/google/uuid"

	"scopeworks_backend/internal/intake/domain"
	"scopeworks_backend/internal/intake/repository"
)

func q(key string, seq int, required bool, cond *domain.Predicate) repository.Question {
	return repository.Question{
		ID:               uuid.New(),
		ServiceType:      "Plumbing",
		Subcategory:      "Leak Repair",
		QuestionKey:      key,
		QuestionText:     "Question " + key,
		ResponseType:     repository.ResponseTypeText,
		Sequence:         seq,
		RequiredForScope: required,
		Condition:        cond,
	}
}

func TestNextEligiblePicksLowestSequenceUnanswered(t *testing.T) {
	questions := []repository.Question{
		q("location", 1, true, nil),
		q("severity", 2, true, nil),
		q("access", 3, false, nil),
	}
	next := NextEligible(questions, map[string]string{"location": "kitchen"})
	if next == nil {
		t.Fatal("expected a next question")
	}
	if next.QuestionKey != "severity" {
		t.Fatalf("expected severity, got %s", next.QuestionKey)
	}
}

func TestNextEligibleSkipsFailedPredicate(t *testing.T) {
	cond := &domain.Predicate{Kind: domain.PredicateAnswerContains, QuestionKey: "location", Value: "wall"}
	questions := []repository.Question{
		q("location", 1, true, nil),
		q("wall_type", 2, true, cond),
		q("severity", 3, true, nil),
	}
	next := NextEligible(questions, map[string]string{"location": "kitchen sink"})
	if next == nil || next.QuestionKey != "severity" {
		t.Fatalf("expected severity, got %+v", next)
	}

	next = NextEligible(questions, map[string]string{"location": "inside the wall"})
	if next == nil || next.QuestionKey != "wall_type" {
		t.Fatalf("expected wall_type once predicate passes, got %+v", next)
	}
}

func TestNextEligibleNilWhenAllAnswered(t *testing.T) {
	questions := []repository.Question{
		q("location", 1, true, nil),
		q("severity", 2, true, nil),
	}
	next := NextEligible(questions, map[string]string{"location": "kitchen", "severity": "bad"})
	if next != nil {
		t.Fatalf("expected no next question, got %s", next.QuestionKey)
	}
}

func TestNextEligibleNeverRepeatsAnswered(t *testing.T) {
	questions := []repository.Question{
		q("location", 1, true, nil),
	}
	answers := map[string]string{}
	next := NextEligible(questions, answers)
	if next == nil || next.QuestionKey != "location" {
		t.Fatalf("expected location first, got %+v", next)
	}
	answers["location"] = "bathroom"
	if NextEligible(questions, answers) != nil {
		t.Fatal("answered question offered again")
	}
}

func TestMissingRequired(t *testing.T) {
	cond := &domain.Predicate{Kind: domain.PredicateAnswerEquals, QuestionKey: "severity", Value: "severe"}
	questions := []repository.Question{
		q("location", 1, true, nil),
		q("severity", 2, true, nil),
		q("shutoff", 3, true, cond),
		q("notes", 4, false, nil),
	}

	missing := MissingRequired(questions, map[string]string{"location": "kitchen"})
	if len(missing) != 1 || missing[0] != "Question severity" {
		t.Fatalf("unexpected missing set: %v", missing)
	}

	missing = MissingRequired(questions, map[string]string{"location": "kitchen", "severity": "severe"})
	if len(missing) != 1 || missing[0] != "Question shutoff" {
		t.Fatalf("conditional required question should appear once eligible: %v", missing)
	}

	missing = MissingRequired(questions, map[string]string{"location": "kitchen", "severity": "severe", "shutoff": "yes"})
	if len(missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", missing)
	}
}
