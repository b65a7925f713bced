package learning

import (
	"math"
	"strings"
	"testing"
)

func f(v float64) *float64 { return &v }
func ir(v int) *int        { return &v }
func s(v string) *string   { return &v }

func TestAccuracyBothZeroIsPerfect(t *testing.T) {
	score := AccuracyScore(Outcome{EstimatedManHours: f(0), ActualManHours: f(0)})
	if score == nil || *score != 1.0 {
		t.Fatalf("expected 1.0, got %v", score)
	}
}

func TestAccuracyZeroEstimateMissedEntirely(t *testing.T) {
	score := AccuracyScore(Outcome{EstimatedManHours: f(0), ActualManHours: f(3)})
	if score == nil || *score != 0.0 {
		t.Fatalf("expected 0.0, got %v", score)
	}
}

func TestAccuracyZeroActualOverEstimate(t *testing.T) {
	score := AccuracyScore(Outcome{EstimatedManHours: f(4), ActualManHours: f(0)})
	if score == nil || *score != 0.5 {
		t.Fatalf("expected 0.5, got %v", score)
	}
}

func TestAccuracySymmetricRelativeError(t *testing.T) {
	a := AccuracyScore(Outcome{EstimatedManHours: f(10), ActualManHours: f(20)})
	b := AccuracyScore(Outcome{EstimatedManHours: f(20), ActualManHours: f(10)})
	if a == nil || b == nil || *a != *b {
		t.Fatalf("expected symmetric scores, got %v and %v", a, b)
	}
	if *a != 0.5 {
		t.Fatalf("expected 0.5 for 2x discrepancy, got %v", *a)
	}
}

func TestAccuracyBoundedZeroToOne(t *testing.T) {
	pairs := [][2]float64{{1, 1000}, {1000, 1}, {3, 3.1}, {0.5, 8}}
	for _, p := range pairs {
		score := AccuracyScore(Outcome{EstimatedManHours: f(p[0]), ActualManHours: f(p[1])})
		if score == nil || *score < 0 || *score > 1 {
			t.Fatalf("score for %v out of range: %v", p, score)
		}
	}
}

func TestAccuracyAveragesDimensions(t *testing.T) {
	// hours perfect (1.0), cost 2x off (0.5) -> 0.75
	score := AccuracyScore(Outcome{
		EstimatedManHours: f(4), ActualManHours: f(4),
		EstimatedCost: f(100), ActualCost: f(200),
	})
	if score == nil || math.Abs(*score-0.75) > 1e-9 {
		t.Fatalf("expected 0.75, got %v", score)
	}
}

func TestAccuracyNilWhenNothingComputable(t *testing.T) {
	if score := AccuracyScore(Outcome{}); score != nil {
		t.Fatalf("expected nil, got %v", *score)
	}
	if score := AccuracyScore(Outcome{EstimatedManHours: f(2)}); score != nil {
		t.Fatalf("one-sided dimension must be excluded, got %v", *score)
	}
}

func TestHighQualityTrainingExample(t *testing.T) {
	good := Outcome{CustomerRating: ir(5), IssuesEncountered: s("minor delay")}
	if !IsHighQualityTrainingExample(good, f(0.8)) {
		t.Fatal("expected high quality")
	}
	if IsHighQualityTrainingExample(good, f(0.74)) {
		t.Fatal("low accuracy must disqualify")
	}
	if IsHighQualityTrainingExample(good, nil) {
		t.Fatal("nil accuracy must disqualify")
	}
	if IsHighQualityTrainingExample(Outcome{CustomerRating: ir(3)}, f(0.9)) {
		t.Fatal("rating below 4 must disqualify")
	}
	longIssues := Outcome{CustomerRating: ir(5), IssuesEncountered: s(strings.Repeat("x", 51))}
	if IsHighQualityTrainingExample(longIssues, f(0.9)) {
		t.Fatal("long issues text must disqualify")
	}
	noIssues := Outcome{CustomerRating: ir(4)}
	if !IsHighQualityTrainingExample(noIssues, f(0.75)) {
		t.Fatal("absent issues text should pass")
	}
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func TestTagsDuration(t *testing.T) {
	tags := Tags(Outcome{ActualManHours: f(1.5)}, nil)
	if !hasTag(tags, TagQuickFix) {
		t.Fatalf("expected quick_fix, got %v", tags)
	}
	tags = Tags(Outcome{ActualManHours: f(9)}, nil)
	if !hasTag(tags, TagMultiDay) {
		t.Fatalf("expected multi_day, got %v", tags)
	}
}

func TestTagsAccuracy(t *testing.T) {
	tags := Tags(Outcome{}, f(0.95))
	if !hasTag(tags, TagAccurateEstimate) {
		t.Fatalf("expected accurate_estimate, got %v", tags)
	}
	tags = Tags(Outcome{}, f(0.4))
	if !hasTag(tags, TagEstimationChallenge) {
		t.Fatalf("expected estimation_challenge, got %v", tags)
	}
}

func TestTagsScopeChange(t *testing.T) {
	tags := Tags(Outcome{EstimatedManHours: f(2), ActualManHours: f(4)}, nil)
	if !hasTag(tags, TagScopeChange) {
		t.Fatalf("expected scope_change, got %v", tags)
	}
	tags = Tags(Outcome{EstimatedManHours: f(2), ActualManHours: f(2.5)}, nil)
	if hasTag(tags, TagScopeChange) {
		t.Fatalf("25%% deviation should not be scope_change: %v", tags)
	}
}

func TestTagsKeywords(t *testing.T) {
	tags := Tags(Outcome{Description: "roof repair delayed by heavy rain"}, nil)
	if !hasTag(tags, TagWeatherFactor) {
		t.Fatalf("expected weather_factor, got %v", tags)
	}
	tags = Tags(Outcome{Description: "emergency pipe burst"}, nil)
	if !hasTag(tags, TagUrgent) {
		t.Fatalf("expected urgent, got %v", tags)
	}
	tags = Tags(Outcome{Urgent: true}, nil)
	if !hasTag(tags, TagUrgent) {
		t.Fatalf("urgent flag should tag urgent, got %v", tags)
	}
}
