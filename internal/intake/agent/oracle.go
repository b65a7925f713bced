// Package agent provides the intent classification oracle: a language
// model (or deterministic keyword fallback) that maps free-text service
// requests onto the service taxonomy.
package agent

import "context"

// Intent values for a classified request.
const (
	IntentService      = "service"
	IntentInstallation = "installation"
)

// Classification is the oracle's structured verdict on a request.
type Classification struct {
	ServiceIntent string  `json:"serviceIntent"`
	ServiceType   string  `json:"serviceType"`
	Subcategory   string  `json:"subcategory"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
	Clarifier     string  `json:"clarifier,omitempty"`
}

// Oracle classifies free-text descriptions. Implementations may be
// network-backed and should honor ctx cancellation; callers absorb all
// errors into the default classification.
type Oracle interface {
	// Classify maps a description to a Classification.
	Classify(ctx context.Context, description string) (Classification, error)
	// Name identifies the backing model for logging.
	Name() string
}

// DefaultClassification is the guaranteed-usable fallback used whenever
// the oracle fails or returns something outside the taxonomy.
func DefaultClassification() Classification {
	return Classification{
		ServiceIntent: IntentService,
		ServiceType:   ServiceTypeGeneral,
		Subcategory:   SubcategoryGeneral,
		Confidence:    0.5,
		Reasoning:     "classification unavailable, using general service defaults",
		Clarifier:     "Could you tell us a bit more about the work you need done?",
	}
}
