package precedent

import (
	"sort"
	"strings"
)

// Rank orders precedents by similarity to the current session: number of
// overlapping answer values first, then accuracy score descending, then
// recency. The input slice is not modified.
func Rank(precedents []Precedent, answers map[string]string) []Precedent {
	ranked := make([]Precedent, len(precedents))
	copy(ranked, precedents)

	sort.SliceStable(ranked, func(i, j int) bool {
		oi, oj := overlap(ranked[i].StructuredAnswers, answers), overlap(ranked[j].StructuredAnswers, answers)
		if oi != oj {
			return oi > oj
		}
		ai, aj := scoreOrZero(ranked[i].AccuracyScore), scoreOrZero(ranked[j].AccuracyScore)
		if ai != aj {
			return ai > aj
		}
		return ranked[i].CompletedAt.After(ranked[j].CompletedAt)
	})
	return ranked
}

// overlap counts questions answered the same way in both sets.
func overlap(a, b map[string]string) int {
	n := 0
	for key, va := range a {
		if vb, ok := b[key]; ok && strings.EqualFold(strings.TrimSpace(va), strings.TrimSpace(vb)) {
			n++
		}
	}
	return n
}

func scoreOrZero(s *float64) float64 {
	if s == nil {
		return 0
	}
	return *s
}

// Summary aggregates actuals across the strongest precedents to produce a
// representative range for the cost basis.
type Summary struct {
	Count        int
	MinManHours  float64
	MaxManHours  float64
	AvgManHours  float64
	MinCostCents int64
	MaxCostCents int64
	AvgCostCents int64
}

// Summarize computes the actuals range over the top n ranked precedents
// that carry actuals. Returns a zero-count Summary when nothing usable
// exists.
func Summarize(ranked []Precedent, n int) Summary {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}

	var s Summary
	var hourSum float64
	var costSum int64
	hourCount, costCount := 0, 0

	for _, p := range ranked[:n] {
		if p.ActualManHours == nil && p.ActualCostCents == nil {
			continue
		}
		s.Count++
		if p.ActualManHours != nil {
			h := *p.ActualManHours
			hourSum += h
			hourCount++
			if hourCount == 1 || h < s.MinManHours {
				s.MinManHours = h
			}
			if h > s.MaxManHours {
				s.MaxManHours = h
			}
		}
		if p.ActualCostCents != nil {
			c := *p.ActualCostCents
			costSum += c
			costCount++
			if costCount == 1 || c < s.MinCostCents {
				s.MinCostCents = c
			}
			if c > s.MaxCostCents {
				s.MaxCostCents = c
			}
		}
	}
	if hourCount > 0 {
		s.AvgManHours = hourSum / float64(hourCount)
	}
	if costCount > 0 {
		s.AvgCostCents = costSum / int64(costCount)
	}
	return s
}
