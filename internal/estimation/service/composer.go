package service

import (
	"fmt"
	"math"
	"strings"

	"scopeworks_backend/internal/estimation/precedent"
	"scopeworks_backend/internal/estimation/regional"
	"scopeworks_backend/internal/estimation/standards"
	"scopeworks_backend/internal/estimation/tax"
	"scopeworks_backend/internal/estimation/transport"
)

// hourlyRateCents is the national base labor rate per service type,
// before the regional multiplier.
var hourlyRateCents = map[string]int64{
	"Plumbing":    9500,
	"Electrical":  10500,
	"HVAC":        11000,
	"Carpentry":   8500,
	"Painting":    7000,
	"Roofing":     9000,
	"Landscaping": 6500,
	"Cleaning":    5500,
	"General":     7500,
}

const defaultHourlyRateCents = 7500

// precedentWeight is the share of the labor-hours estimate taken from
// historical actuals when precedents exist.
const precedentWeight = 0.3

// permitRequirements lists permits typically needed per service type.
var permitRequirements = map[string][]string{
	"Electrical": {"Electrical permit from the local jurisdiction"},
	"Plumbing":   {"Plumbing permit when supply or drain lines are altered"},
	"HVAC":       {"Mechanical permit for equipment replacement"},
	"Roofing":    {"Building permit for structural roof work"},
}

// disposalNotes describes debris handling per service type.
var disposalNotes = map[string]string{
	"Roofing":     "Haul away and dispose of removed roofing material",
	"Carpentry":   "Remove and dispose of demolition debris",
	"Landscaping": "Haul away green waste and soil spoils",
	"HVAC":        "Recover refrigerant and dispose of replaced equipment",
}

// issueKeywords drives the detected-issues diagnostic scan.
var issueKeywords = []struct {
	keyword string
	issue   string
}{
	{"leak", "active leak"},
	{"drip", "active leak"},
	{"clog", "blockage"},
	{"block", "blockage"},
	{"no power", "power loss"},
	{"spark", "electrical hazard"},
	{"mold", "moisture damage"},
	{"water damage", "moisture damage"},
	{"not working", "equipment failure"},
	{"broken", "equipment failure"},
	{"noise", "abnormal operation"},
	{"smell", "abnormal operation"},
}

// composeInput carries everything the pure composer needs.
type composeInput struct {
	Snapshot          SessionSnapshot
	Standards         []standards.ProductionStandard
	RankedPrecedents  []precedent.Precedent
	Adjustment        regional.Adjustment
	State             string
	UrgencyFeePercent int
}

// compose builds a StructuredScope from already-fetched data. It is
// deterministic: identical inputs produce identical figures.
func compose(in composeInput) transport.StructuredScope {
	snap := in.Snapshot

	scope := transport.StructuredScope{
		SessionID: snap.ID,
		Summary:   summarize(snap),
		Narrative: buildNarrative(snap, in.Standards),
		Regional: transport.RegionalNote{
			Multiplier:        in.Adjustment.Multiplier,
			Label:             in.Adjustment.Label,
			AdjustmentPercent: in.Adjustment.AdjustmentPercent,
			AppliesTo:         in.Adjustment.AppliesTo,
		},
		AcceptanceCriteria:  acceptanceCriteria(snap.ServiceType),
		RequiredAfterPhotos: afterPhotos(snap.ServiceType),
		Permits:             permitRequirements[snap.ServiceType],
		Disposal:            disposalNotes[snap.ServiceType],
	}

	var baseHours float64
	var materialCents int64
	for _, std := range in.Standards {
		item := transport.ScopeLineItem{
			Description:   std.ItemDescription,
			UnitOfMeasure: std.UnitOfMeasure,
			Quantity:      1,
			LaborHours:    std.LaborHoursPerUnit,
			MaterialCents: std.MaterialCostCents,
		}
		scope.LineItems = append(scope.LineItems, item)
		if std.LaborHoursPerUnit != nil {
			baseHours += *std.LaborHoursPerUnit
			scope.Labor = append(scope.Labor, transport.ScopeLabor{
				Description: std.ItemDescription,
				Hours:       *std.LaborHoursPerUnit,
			})
		}
		if std.MaterialCostCents != nil {
			materialCents += *std.MaterialCostCents
			scope.Materials = append(scope.Materials, transport.ScopeMaterial{
				Description:   std.ItemDescription,
				UnitOfMeasure: std.UnitOfMeasure,
				CostCents:     *std.MaterialCostCents,
			})
		}
	}

	summary := precedent.Summarize(in.RankedPrecedents, 5)

	hours, dataSources := blendHours(baseHours, len(in.Standards) > 0, summary)
	scope.EstimatedManHours = hours
	if summary.Count > 0 {
		scope.Diagnostics.PrecedentRange = &transport.PrecedentRange{
			JobCount:     summary.Count,
			MinManHours:  summary.MinManHours,
			MaxManHours:  summary.MaxManHours,
			MinCostCents: summary.MinCostCents,
			MaxCostCents: summary.MaxCostCents,
		}
	}

	rate, ok := hourlyRateCents[snap.ServiceType]
	if !ok {
		rate = defaultHourlyRateCents
	}
	laborCents := roundCents(hours * float64(rate) * in.Adjustment.Multiplier)
	subtotal := laborCents + materialCents

	taxRes := tax.Calculate(tax.Input{
		State:         in.State,
		ServiceType:   snap.ServiceType,
		SubtotalCents: subtotal,
		LaborCents:    laborCents,
		MaterialCents: materialCents,
	})
	scope.Tax = transport.TaxNote{
		IsTaxable:    taxRes.IsTaxable,
		Rate:         taxRes.Rate,
		TaxCents:     taxRes.TaxCents,
		TaxableCents: taxRes.TaxableCents,
		Regime:       string(taxRes.Regime),
		Notes:        taxRes.Notes,
	}

	var urgencyFee int64
	if snap.Urgent && in.UrgencyFeePercent > 0 {
		// Urgency is a flat surcharge on the subtotal, excluded from the
		// taxable amount.
		urgencyFee = (subtotal*int64(in.UrgencyFeePercent) + 50) / 100
	}

	scope.Cost = transport.CostBreakdown{
		LaborCents:      laborCents,
		MaterialCents:   materialCents,
		SubtotalCents:   subtotal,
		TaxCents:        taxRes.TaxCents,
		UrgencyFeeCents: urgencyFee,
		TotalCents:      subtotal + taxRes.TaxCents + urgencyFee,
	}

	scope.Clarifications = clarifications(snap, len(in.Standards))
	scope.Diagnostics.DetectedService = snap.ServiceType + " / " + snap.Subcategory
	scope.Diagnostics.DetectedIssues = detectIssues(snap.Description)
	scope.Diagnostics.Confidence = snap.Confidence
	scope.Diagnostics.Degraded = snap.Degraded
	scope.Diagnostics.DataSourcesUsed = dataSources

	return scope
}

// blendHours combines standards-based hours with historical actuals. With
// no standards, precedent averages carry the whole estimate; with no
// precedents, standards stand alone.
func blendHours(baseHours float64, haveStandards bool, summary precedent.Summary) (float64, []string) {
	switch {
	case haveStandards && summary.Count > 0 && summary.AvgManHours > 0:
		blended := baseHours*(1-precedentWeight) + summary.AvgManHours*precedentWeight
		return round2(blended), []string{"production_standards", "historical_jobs"}
	case haveStandards:
		return round2(baseHours), []string{"production_standards"}
	case summary.Count > 0 && summary.AvgManHours > 0:
		return round2(summary.AvgManHours), []string{"historical_jobs"}
	default:
		return 0, []string{}
	}
}

func clarifications(snap SessionSnapshot, standardCount int) []string {
	var out []string
	if standardCount == 0 {
		out = append(out, fmt.Sprintf(
			"No standard pricing found for %s / %s; a site visit or manual review is needed before this estimate can be finalized.",
			snap.ServiceType, snap.Subcategory))
	}
	for _, text := range snap.MissingRequired {
		out = append(out, "Unanswered: "+text)
	}
	if snap.Clarifier != nil && *snap.Clarifier != "" {
		out = append(out, *snap.Clarifier)
	}
	return out
}

func summarize(snap SessionSnapshot) string {
	verb := "Repair service"
	if snap.ServiceIntent == "installation" {
		verb = "Installation"
	}
	s := fmt.Sprintf("%s: %s (%s)", verb, snap.Subcategory, snap.ServiceType)
	if snap.Urgent {
		s += " [urgent]"
	}
	return s
}

func buildNarrative(snap SessionSnapshot, stds []standards.ProductionStandard) *transport.Narrative {
	n := &transport.Narrative{
		ExistingConditions: "Customer reports: " + snap.Description,
		ProjectDescription: fmt.Sprintf("Perform %s work (%s) as described by the customer and confirmed through intake questions.",
			strings.ToLower(snap.ServiceType), snap.Subcategory),
	}
	n.ScopeOfWork = append(n.ScopeOfWork, "Assess the reported condition on site and confirm the scope")
	for _, std := range stds {
		n.ScopeOfWork = append(n.ScopeOfWork, std.ItemDescription)
	}
	n.ScopeOfWork = append(n.ScopeOfWork, "Test completed work and walk through results with the customer")
	return n
}

func detectIssues(description string) []string {
	lower := strings.ToLower(description)
	seen := map[string]bool{}
	var issues []string
	for _, k := range issueKeywords {
		if strings.Contains(lower, k.keyword) && !seen[k.issue] {
			seen[k.issue] = true
			issues = append(issues, k.issue)
		}
	}
	return issues
}

func acceptanceCriteria(serviceType string) []string {
	base := []string{
		"Work area left clean and free of debris",
		"Customer walkthrough completed and sign-off obtained",
	}
	switch serviceType {
	case "Plumbing":
		return append([]string{"No visible leaks under operating pressure for 15 minutes"}, base...)
	case "Electrical":
		return append([]string{"All circuits tested and load-verified"}, base...)
	case "HVAC":
		return append([]string{"System reaches set point within manufacturer tolerances"}, base...)
	case "Roofing":
		return append([]string{"No water intrusion under hose test"}, base...)
	default:
		return base
	}
}

func afterPhotos(serviceType string) []string {
	photos := []string{"Completed work area, wide shot", "Close-up of finished work"}
	switch serviceType {
	case "Plumbing":
		return append(photos, "Dry fitting/joint after pressure test")
	case "Electrical":
		return append(photos, "Panel or junction with cover reinstalled")
	default:
		return photos
	}
}

func roundCents(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
