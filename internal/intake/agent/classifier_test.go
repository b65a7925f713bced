package agent

import (
	"context"
	"errors"
	"testing"

	"scopeworks_backend/platform/logger"
)

type failingOracle struct{}

func (failingOracle) Classify(context.Context, string) (Classification, error) {
	return Classification{}, errors.New("upstream timeout")
}
func (failingOracle) Name() string { return "failing" }

type fixedOracle struct{ c Classification }

func (o fixedOracle) Classify(context.Context, string) (Classification, error) {
	return o.c, nil
}
func (fixedOracle) Name() string { return "fixed" }

func TestClassifierDegradesOnOracleFailure(t *testing.T) {
	c := NewClassifier(failingOracle{}, logger.New("test"))
	res := c.Classify(context.Background(), "my sink is broken")
	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.DegradedReason == "" {
		t.Fatal("expected degraded reason")
	}
	if res.ServiceType != ServiceTypeGeneral || res.Subcategory != SubcategoryGeneral {
		t.Fatalf("expected general defaults, got %s / %s", res.ServiceType, res.Subcategory)
	}
	if res.Confidence != 0.5 {
		t.Fatalf("expected default confidence 0.5, got %v", res.Confidence)
	}
}

func TestClassifierEmptyDescription(t *testing.T) {
	c := NewClassifier(failingOracle{}, logger.New("test"))
	res := c.Classify(context.Background(), "   ")
	if res.Degraded {
		t.Fatal("empty description should not count as oracle degradation")
	}
	if res.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", res.Confidence)
	}
	if res.Clarifier == "" {
		t.Fatal("expected a clarifying question")
	}
}

func TestClassifierAddsClarifierBelowThreshold(t *testing.T) {
	c := NewClassifier(fixedOracle{c: Classification{
		ServiceIntent: IntentService,
		ServiceType:   "Plumbing",
		Subcategory:   "Leak Repair",
		Confidence:    0.6,
	}}, logger.New("test"))
	res := c.Classify(context.Background(), "water somewhere under the house maybe")
	if res.Clarifier == "" {
		t.Fatal("expected clarifier for confidence below 0.7")
	}
	if res.Degraded {
		t.Fatal("unexpected degradation")
	}
}

func TestClassifierKeepsClarifierAboveThreshold(t *testing.T) {
	c := NewClassifier(fixedOracle{c: Classification{
		ServiceIntent: IntentService,
		ServiceType:   "Plumbing",
		Subcategory:   "Leak Repair",
		Confidence:    0.85,
	}}, logger.New("test"))
	res := c.Classify(context.Background(), "leaking pipe under the kitchen sink")
	if res.Clarifier != "" {
		t.Fatalf("unexpected clarifier: %q", res.Clarifier)
	}
}

func TestKeywordOracleLeakingPipe(t *testing.T) {
	o := NewKeywordOracle()
	cls, err := o.Classify(context.Background(), "I need a plumber, there is a leaking pipe under my kitchen sink")
	if err != nil {
		t.Fatal(err)
	}
	if cls.ServiceType != "Plumbing" {
		t.Fatalf("expected Plumbing, got %s", cls.ServiceType)
	}
	if cls.Subcategory != "Leak Repair" {
		t.Fatalf("expected Leak Repair, got %s", cls.Subcategory)
	}
	if cls.ServiceIntent != IntentService {
		t.Fatalf("expected service intent, got %s", cls.ServiceIntent)
	}
	if cls.Confidence <= 0.6 {
		t.Fatalf("expected confidence above 0.6, got %v", cls.Confidence)
	}
}

func TestKeywordOracleInstallationIntent(t *testing.T) {
	o := NewKeywordOracle()
	cls, err := o.Classify(context.Background(), "install a new ceiling fan in the bedroom")
	if err != nil {
		t.Fatal(err)
	}
	if cls.ServiceIntent != IntentInstallation {
		t.Fatalf("expected installation intent, got %s", cls.ServiceIntent)
	}
	if cls.ServiceType != "Electrical" {
		t.Fatalf("expected Electrical, got %s", cls.ServiceType)
	}
}

func TestKeywordOracleNoMatch(t *testing.T) {
	o := NewKeywordOracle()
	cls, err := o.Classify(context.Background(), "something is wrong")
	if err != nil {
		t.Fatal(err)
	}
	if cls.ServiceType != ServiceTypeGeneral {
		t.Fatalf("expected general fallback, got %s", cls.ServiceType)
	}
	if cls.Confidence != 0.5 {
		t.Fatalf("expected 0.5 confidence, got %v", cls.Confidence)
	}
}

func TestNormalizeFoldsUnknownTaxonomy(t *testing.T) {
	c := Classification{ServiceIntent: "repair", ServiceType: "Masonry", Subcategory: "Brickwork", Confidence: 0.9}
	normalize(&c)
	if c.ServiceType != ServiceTypeGeneral || c.Subcategory != SubcategoryGeneral {
		t.Fatalf("expected general fallback, got %s / %s", c.ServiceType, c.Subcategory)
	}
	if c.Confidence > 0.5 {
		t.Fatalf("confidence should be capped at 0.5, got %v", c.Confidence)
	}
	if c.ServiceIntent != IntentService {
		t.Fatalf("unknown intent should fold to service, got %s", c.ServiceIntent)
	}
}

func TestNormalizeKnownSubcategoryOfKnownType(t *testing.T) {
	c := Classification{ServiceIntent: IntentService, ServiceType: "Plumbing", Subcategory: "Pipe Stuff", Confidence: 0.8}
	normalize(&c)
	if c.ServiceType != "Plumbing" {
		t.Fatalf("service type should survive, got %s", c.ServiceType)
	}
	if c.Subcategory != "Leak Repair" {
		t.Fatalf("expected first Plumbing subcategory, got %s", c.Subcategory)
	}
}
