// Package regional resolves a customer address to a labor-cost multiplier.
// The multiplier applies to labor only; materials are nationally priced.
package regional

import (
	"math"
	"strings"
)

// Location is a parsed (city, state) pair. Either field may be empty.
type Location struct {
	City  string
	State string
}

// Adjustment is a resolved regional pricing adjustment.
type Adjustment struct {
	Multiplier        float64
	Label             string
	AdjustmentPercent int
	AppliesTo         string
}

const appliesToLabor = "labor only"

// ruralMultiplier applies when a state is recognized but neither the city
// nor the state has a curated rate.
const ruralMultiplier = 0.9

// stateNames maps full state names (lowercased) to USPS codes.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

var stateCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(stateNames))
	for _, code := range stateNames {
		codes[code] = struct{}{}
	}
	return codes
}()

// cityMultipliers is the curated city table, keyed "city|ST" lowercased.
var cityMultipliers = map[string]struct {
	multiplier float64
	label      string
}{
	"san francisco|CA": {1.25, "San Francisco premium market"},
	"san jose|CA":      {1.22, "South Bay premium market"},
	"los angeles|CA":   {1.15, "Los Angeles metro"},
	"san diego|CA":     {1.10, "San Diego metro"},
	"new york|NY":      {1.30, "New York City premium market"},
	"seattle|WA":       {1.18, "Seattle metro"},
	"boston|MA":        {1.20, "Boston metro"},
	"chicago|IL":       {1.12, "Chicago metro"},
	"denver|CO":        {1.08, "Denver metro"},
	"austin|TX":        {1.05, "Austin metro"},
	"dallas|TX":        {1.00, "Standard rate"},
	"houston|TX":       {1.00, "Standard rate"},
	"miami|FL":         {1.10, "Miami metro"},
	"atlanta|GA":       {1.05, "Atlanta metro"},
	"phoenix|AZ":       {1.02, "Phoenix metro"},
	"portland|OR":      {1.10, "Portland metro"},
}

// stateDefaults is the state-level default multiplier table.
var stateDefaults = map[string]struct {
	multiplier float64
	label      string
}{
	"CA": {1.15, "California state average"},
	"NY": {1.18, "New York state average"},
	"WA": {1.10, "Washington state average"},
	"MA": {1.12, "Massachusetts state average"},
	"TX": {1.00, "Standard rate"},
	"FL": {1.02, "Florida state average"},
	"CO": {1.04, "Colorado state average"},
	"IL": {1.05, "Illinois state average"},
	"GA": {1.00, "Standard rate"},
	"AZ": {1.00, "Standard rate"},
	"OR": {1.05, "Oregon state average"},
	"OH": {0.95, "Ohio state average"},
	"MI": {0.95, "Michigan state average"},
	"TN": {0.94, "Tennessee state average"},
	"AL": {0.90, "Alabama state average"},
	"MS": {0.88, "Mississippi state average"},
}

// ParseLocation extracts a (city, state) pair from a free-form address.
// Segments are split on commas and scanned right to left for a two-letter
// state code or a full state name; the preceding segment is taken as city.
// An unparseable address yields an empty Location, never an error.
func ParseLocation(address string) Location {
	segments := strings.Split(address, ",")
	for i := len(segments) - 1; i >= 0; i-- {
		state := matchState(segments[i])
		if state == "" {
			continue
		}
		loc := Location{State: state}
		if i > 0 {
			loc.City = strings.TrimSpace(segments[i-1])
		}
		return loc
	}
	return Location{}
}

// matchState recognizes a 2-letter code (possibly followed by a ZIP) or a
// full state name within one address segment.
func matchState(segment string) string {
	fields := strings.Fields(strings.TrimSpace(segment))
	for _, f := range fields {
		upper := strings.ToUpper(strings.Trim(f, "."))
		if len(upper) == 2 {
			if _, ok := stateCodes[upper]; ok {
				return upper
			}
		}
	}
	lower := strings.ToLower(strings.TrimSpace(segment))
	if code, ok := stateNames[lower]; ok {
		return code
	}
	// Full name followed by a ZIP code.
	for name, code := range stateNames {
		if strings.HasPrefix(lower, name+" ") {
			return code
		}
	}
	return ""
}

// Multiplier resolves the regional adjustment for a parsed location:
// city match, then state default, then the rural fallback when the state
// is recognized, then 1.0. The result is always positive.
func Multiplier(loc Location) Adjustment {
	if loc.State == "" {
		return adjustment(1.0, "Standard rate")
	}
	if loc.City != "" {
		key := strings.ToLower(loc.City) + "|" + loc.State
		if m, ok := cityMultipliers[key]; ok {
			return adjustment(m.multiplier, m.label)
		}
	}
	if m, ok := stateDefaults[loc.State]; ok {
		return adjustment(m.multiplier, m.label)
	}
	return adjustment(ruralMultiplier, "Rural/small market rate")
}

// ForAddress parses and resolves in one step.
func ForAddress(address string) Adjustment {
	return Multiplier(ParseLocation(address))
}

func adjustment(multiplier float64, label string) Adjustment {
	return Adjustment{
		Multiplier:        multiplier,
		Label:             label,
		AdjustmentPercent: int(math.Round((multiplier - 1) * 100)),
		AppliesTo:         appliesToLabor,
	}
}
