// Package tax computes sales tax on service work using per-state tax
// regimes and per-service taxability rules. All amounts are integer cents.
package tax

import "math"

// Regime classifies how a state taxes services.
type Regime string

const (
	// RegimeBroad taxes most services on the full subtotal.
	RegimeBroad Regime = "broad"
	// RegimeSelective taxes only registered service types.
	RegimeSelective Regime = "selective"
	// RegimeNoTax states levy no sales tax.
	RegimeNoTax Regime = "no_tax"
	// RegimeUnknown is used when no state is available.
	RegimeUnknown Regime = "unknown"
)

// Input describes the cost breakdown being taxed. Urgency or other add-on
// fees must be excluded from LaborCents/MaterialCents by the caller.
type Input struct {
	State         string
	ServiceType   string
	SubtotalCents int64
	LaborCents    int64
	MaterialCents int64
}

// Result is the computed tax outcome.
type Result struct {
	IsTaxable    bool
	Rate         float64
	TaxCents     int64
	TaxableCents int64
	Regime       Regime
	Notes        string
}

// serviceRule is a per-service-type taxability entry for selective states.
type serviceRule struct {
	commonlyTaxable bool
	overrideRate    float64 // 0 means use the state base rate
}

type stateRule struct {
	regime   Regime
	baseRate float64
	services map[string]serviceRule
}

// stateRules is the per-state tax table. States absent from the table get
// the selective regime default with no registered services, which keeps
// them non-taxable until explicitly configured.
var stateRules = map[string]stateRule{
	// No general sales tax.
	"OR": {regime: RegimeNoTax},
	"MT": {regime: RegimeNoTax},
	"NH": {regime: RegimeNoTax},
	"DE": {regime: RegimeNoTax},
	"AK": {regime: RegimeNoTax},

	// Broad: services generally taxable on the full subtotal.
	"HI": {regime: RegimeBroad, baseRate: 0.04},
	"NM": {regime: RegimeBroad, baseRate: 0.05125},
	"WV": {regime: RegimeBroad, baseRate: 0.06},

	// Selective: only registered service types are taxable.
	"SD": {regime: RegimeSelective, baseRate: 0.042, services: map[string]serviceRule{
		"Plumbing":    {commonlyTaxable: true},
		"Electrical":  {commonlyTaxable: true},
		"HVAC":        {commonlyTaxable: true},
		"Cleaning":    {commonlyTaxable: true},
		"Landscaping": {commonlyTaxable: true},
	}},
	"TX": {regime: RegimeSelective, baseRate: 0.0625, services: map[string]serviceRule{
		"Cleaning":    {commonlyTaxable: true},
		"Landscaping": {commonlyTaxable: true},
		"HVAC":        {commonlyTaxable: true, overrideRate: 0.0825},
	}},
	"NY": {regime: RegimeSelective, baseRate: 0.04, services: map[string]serviceRule{
		"Cleaning":    {commonlyTaxable: true},
		"HVAC":        {commonlyTaxable: true},
		"Electrical":  {commonlyTaxable: true},
		"Landscaping": {commonlyTaxable: true},
	}},
	"CT": {regime: RegimeSelective, baseRate: 0.0635, services: map[string]serviceRule{
		"Cleaning":    {commonlyTaxable: true},
		"Landscaping": {commonlyTaxable: true},
		"Painting":    {commonlyTaxable: true},
	}},
	"FL": {regime: RegimeSelective, baseRate: 0.06, services: map[string]serviceRule{
		"Cleaning": {commonlyTaxable: true},
	}},
	"WA": {regime: RegimeSelective, baseRate: 0.065, services: map[string]serviceRule{
		"Plumbing":    {commonlyTaxable: true},
		"Electrical":  {commonlyTaxable: true},
		"HVAC":        {commonlyTaxable: true},
		"Carpentry":   {commonlyTaxable: true},
		"Painting":    {commonlyTaxable: true},
		"Roofing":     {commonlyTaxable: true},
		"Landscaping": {commonlyTaxable: true},
		"Cleaning":    {commonlyTaxable: true},
	}},
	"CA": {regime: RegimeSelective, baseRate: 0.0725, services: map[string]serviceRule{}},
	"IL": {regime: RegimeSelective, baseRate: 0.0625, services: map[string]serviceRule{}},
	"CO": {regime: RegimeSelective, baseRate: 0.029, services: map[string]serviceRule{}},
	"GA": {regime: RegimeSelective, baseRate: 0.04, services: map[string]serviceRule{}},
	"MA": {regime: RegimeSelective, baseRate: 0.0625, services: map[string]serviceRule{}},
	"AZ": {regime: RegimeSelective, baseRate: 0.056, services: map[string]serviceRule{}},
}

// Calculate resolves the tax owed for a cost breakdown. No state means
// regime unknown and no tax. Unregistered service types in selective
// states are treated as not taxable.
func Calculate(in Input) Result {
	if in.State == "" {
		return Result{Regime: RegimeUnknown, Notes: "No state provided; sales tax not assessed"}
	}

	rule, ok := stateRules[in.State]
	if !ok {
		return Result{Regime: RegimeSelective, Notes: "Service type not registered as taxable in " + in.State}
	}

	switch rule.regime {
	case RegimeNoTax:
		return Result{Regime: RegimeNoTax, Notes: in.State + " levies no sales tax on services"}
	case RegimeBroad:
		return taxed(rule.regime, in.SubtotalCents, rule.baseRate, "Full subtotal taxable under "+in.State+" broad service tax")
	default:
		svc, registered := rule.services[in.ServiceType]
		if !registered || !svc.commonlyTaxable {
			return Result{Regime: RegimeSelective, Notes: "Service type not registered as taxable in " + in.State}
		}
		rate := rule.baseRate
		if svc.overrideRate > 0 {
			rate = svc.overrideRate
		}
		return taxed(RegimeSelective, in.LaborCents+in.MaterialCents, rate, in.ServiceType+" is taxable in "+in.State)
	}
}

func taxed(regime Regime, taxableCents int64, rate float64, notes string) Result {
	return Result{
		IsTaxable:    true,
		Rate:         rate,
		TaxCents:     roundHalfUp(float64(taxableCents) * rate),
		TaxableCents: taxableCents,
		Regime:       regime,
		Notes:        notes,
	}
}

// roundHalfUp rounds to the nearest cent with .5 rounding away from zero.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
