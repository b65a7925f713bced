// Package learning computes the accuracy score and descriptive tags that
// turn a completed job into training signal for future estimates.
package learning

import (
	"math"
	"strings"
)

// Outcome carries the estimate/actual pairs and context needed to score a
// completed job. Monetary values are integer cents converted by the caller.
type Outcome struct {
	EstimatedManHours *float64
	ActualManHours    *float64
	EstimatedCost     *float64
	ActualCost        *float64
	CustomerRating    *int
	IssuesEncountered *string
	Description       string
	Urgent            bool
}

// AccuracyScore scores how well the estimate matched the actuals, as the
// mean of the computable dimension scores. Returns nil when neither the
// hours nor the cost dimension is computable.
func AccuracyScore(o Outcome) *float64 {
	var scores []float64
	if s := dimensionScore(o.EstimatedManHours, o.ActualManHours); s != nil {
		scores = append(scores, *s)
	}
	if s := dimensionScore(o.EstimatedCost, o.ActualCost); s != nil {
		scores = append(scores, *s)
	}
	if len(scores) == 0 {
		return nil
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	return &mean
}

// dimensionScore applies the per-dimension policy:
// both zero is a perfect score, a zero estimate against real work scores
// zero, over-estimating work that took nothing scores 0.5, and otherwise
// the symmetric relative error decides, floored at zero.
func dimensionScore(estimated, actual *float64) *float64 {
	if estimated == nil || actual == nil {
		return nil
	}
	est, act := *estimated, *actual

	var score float64
	switch {
	case est == 0 && act == 0:
		score = 1.0
	case est == 0:
		score = 0.0
	case act == 0:
		score = 0.5
	default:
		relErr := math.Abs(est-act) / math.Max(est, act)
		score = math.Max(0, 1-math.Min(1, relErr))
	}
	return &score
}

// IsHighQualityTrainingExample reports whether a scored job should be
// weighted more heavily as a precedent: accurate, well rated, and without
// substantial issues.
func IsHighQualityTrainingExample(o Outcome, accuracyScore *float64) bool {
	if accuracyScore == nil || *accuracyScore < 0.75 {
		return false
	}
	if o.CustomerRating == nil || *o.CustomerRating < 4 {
		return false
	}
	if o.IssuesEncountered != nil && len(strings.TrimSpace(*o.IssuesEncountered)) > 50 {
		return false
	}
	return true
}

// Tag values attached to completed jobs for retrieval filtering.
const (
	TagQuickFix            = "quick_fix"
	TagMultiDay            = "multi_day"
	TagAccurateEstimate    = "accurate_estimate"
	TagEstimationChallenge = "estimation_challenge"
	TagScopeChange         = "scope_change"
	TagWeatherFactor       = "weather_factor"
	TagUrgent              = "urgent"
)

var weatherKeywords = []string{"rain", "storm", "snow", "ice", "wind", "flood", "weather", "frozen"}
var urgentKeywords = []string{"urgent", "emergency", "asap", "immediately", "right away"}

// Tags derives descriptive tags from a scored outcome. Purely
// informational; tags never feed back into the score.
func Tags(o Outcome, accuracyScore *float64) []string {
	var tags []string

	if o.ActualManHours != nil {
		if *o.ActualManHours < 2 {
			tags = append(tags, TagQuickFix)
		}
		if *o.ActualManHours > 8 {
			tags = append(tags, TagMultiDay)
		}
	}
	if accuracyScore != nil {
		if *accuracyScore >= 0.9 {
			tags = append(tags, TagAccurateEstimate)
		}
		if *accuracyScore < 0.6 {
			tags = append(tags, TagEstimationChallenge)
		}
	}
	if o.EstimatedManHours != nil && o.ActualManHours != nil && *o.EstimatedManHours > 0 {
		if math.Abs(*o.ActualManHours-*o.EstimatedManHours) / *o.EstimatedManHours > 0.5 {
			tags = append(tags, TagScopeChange)
		}
	}

	haystack := strings.ToLower(o.Description)
	if o.IssuesEncountered != nil {
		haystack += " " + strings.ToLower(*o.IssuesEncountered)
	}
	if containsAny(haystack, weatherKeywords) {
		tags = append(tags, TagWeatherFactor)
	}
	if o.Urgent || containsAny(haystack, urgentKeywords) {
		tags = append(tags, TagUrgent)
	}
	return tags
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
