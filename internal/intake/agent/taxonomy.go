package agent

import "strings"

// General fallback taxonomy entries.
const (
	ServiceTypeGeneral = "General"
	SubcategoryGeneral = "General Service"
)

// taxonomy is the fixed service taxonomy the pipeline estimates against.
// Subcategory order matters: the keyword oracle picks the first match.
var taxonomy = map[string][]string{
	"Plumbing":    {"Leak Repair", "Drain Cleaning", "Faucet Repair", "Toilet Repair", "Water Heater"},
	"Electrical":  {"Outlet Repair", "Fixture Installation", "Panel Upgrade", "Wiring Repair"},
	"HVAC":        {"AC Repair", "Furnace Repair", "System Installation", "Maintenance"},
	"Carpentry":   {"Door Repair", "Deck Repair", "Trim Work", "Cabinet Installation"},
	"Painting":    {"Interior Painting", "Exterior Painting", "Drywall Repair"},
	"Roofing":     {"Leak Repair", "Shingle Replacement", "Gutter Repair"},
	"Landscaping": {"Lawn Care", "Tree Service", "Irrigation Repair"},
	"Cleaning":    {"Deep Cleaning", "Move-Out Cleaning", "Window Cleaning"},
	ServiceTypeGeneral: {SubcategoryGeneral},
}

// keywordRules map description keywords to taxonomy entries. Scanned in
// order; the first rule whose keyword appears wins.
var keywordRules = []struct {
	keyword     string
	serviceType string
	subcategory string
	install     bool
}{
	{"leaking pipe", "Plumbing", "Leak Repair", false},
	{"leaky", "Plumbing", "Leak Repair", false},
	{"leak", "Plumbing", "Leak Repair", false},
	{"clog", "Plumbing", "Drain Cleaning", false},
	{"drain", "Plumbing", "Drain Cleaning", false},
	{"faucet", "Plumbing", "Faucet Repair", false},
	{"toilet", "Plumbing", "Toilet Repair", false},
	{"water heater", "Plumbing", "Water Heater", false},
	{"plumb", "Plumbing", "Leak Repair", false},
	{"outlet", "Electrical", "Outlet Repair", false},
	{"breaker", "Electrical", "Panel Upgrade", false},
	{"panel", "Electrical", "Panel Upgrade", false},
	{"light fixture", "Electrical", "Fixture Installation", true},
	{"ceiling fan", "Electrical", "Fixture Installation", true},
	{"wiring", "Electrical", "Wiring Repair", false},
	{"electric", "Electrical", "Outlet Repair", false},
	{"air condition", "HVAC", "AC Repair", false},
	{"a/c", "HVAC", "AC Repair", false},
	{"furnace", "HVAC", "Furnace Repair", false},
	{"heat pump", "HVAC", "System Installation", true},
	{"hvac", "HVAC", "Maintenance", false},
	{"deck", "Carpentry", "Deck Repair", false},
	{"door", "Carpentry", "Door Repair", false},
	{"cabinet", "Carpentry", "Cabinet Installation", true},
	{"trim", "Carpentry", "Trim Work", false},
	{"drywall", "Painting", "Drywall Repair", false},
	{"paint", "Painting", "Interior Painting", false},
	{"roof", "Roofing", "Leak Repair", false},
	{"shingle", "Roofing", "Shingle Replacement", false},
	{"gutter", "Roofing", "Gutter Repair", false},
	{"lawn", "Landscaping", "Lawn Care", false},
	{"tree", "Landscaping", "Tree Service", false},
	{"sprinkler", "Landscaping", "Irrigation Repair", false},
	{"irrigation", "Landscaping", "Irrigation Repair", false},
	{"clean", "Cleaning", "Deep Cleaning", false},
	{"install", ServiceTypeGeneral, SubcategoryGeneral, true},
}

// InTaxonomy reports whether the (serviceType, subcategory) pair exists.
func InTaxonomy(serviceType, subcategory string) bool {
	subs, ok := taxonomy[serviceType]
	if !ok {
		return false
	}
	for _, sub := range subs {
		if strings.EqualFold(sub, subcategory) {
			return true
		}
	}
	return false
}

// ServiceTypes returns the taxonomy's service types in stable order.
func ServiceTypes() []string {
	return []string{"Plumbing", "Electrical", "HVAC", "Carpentry", "Painting", "Roofing", "Landscaping", "Cleaning", ServiceTypeGeneral}
}

// Subcategories returns the subcategories for a service type.
func Subcategories(serviceType string) []string {
	return taxonomy[serviceType]
}
