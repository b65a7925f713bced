package agent

import (
	"context"
	"strings"
)

// KeywordOracle classifies descriptions with a fixed keyword table. It is the
// deterministic fallback when no Gemini API key is configured, and it also
// serves offline tests.
type KeywordOracle struct{}

var _ Oracle = (*KeywordOracle)(nil)

func NewKeywordOracle() *KeywordOracle { return &KeywordOracle{} }

func (o *KeywordOracle) Name() string { return "keyword" }

func (o *KeywordOracle) Classify(_ context.Context, description string) (Classification, error) {
	lower := strings.ToLower(description)
	for _, rule := range keywordRules {
		if !strings.Contains(lower, rule.keyword) {
			continue
		}
		intent := IntentService
		if rule.install || strings.Contains(lower, "install") || strings.Contains(lower, "replace") {
			intent = IntentInstallation
		}
		return Classification{
			ServiceIntent: intent,
			ServiceType:   rule.serviceType,
			Subcategory:   rule.subcategory,
			Confidence:    keywordConfidence(lower, rule.keyword),
			Reasoning:     "matched keyword \"" + rule.keyword + "\"",
		}, nil
	}
	c := DefaultClassification()
	c.Reasoning = "no keyword matched"
	return c, nil
}

// keywordConfidence scales with how specific the matched keyword is and how
// much descriptive detail the customer gave.
func keywordConfidence(lower, keyword string) float64 {
	conf := 0.65
	if len(keyword) >= 6 || strings.Contains(keyword, " ") {
		conf += 0.1
	}
	if len(strings.Fields(lower)) >= 5 {
		conf += 0.1
	}
	if conf > 0.9 {
		conf = 0.9
	}
	return conf
}
