// Package transport defines the structured scope output shapes.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// ScopeLineItem is one priced work item derived from a production standard.
type ScopeLineItem struct {
	Description   string   `json:"description"`
	UnitOfMeasure string   `json:"unitOfMeasure"`
	Quantity      float64  `json:"quantity"`
	LaborHours    *float64 `json:"laborHours,omitempty"`
	MaterialCents *int64   `json:"materialCents,omitempty"`
}

// ScopeMaterial is a material purchase entry.
type ScopeMaterial struct {
	Description   string `json:"description"`
	UnitOfMeasure string `json:"unitOfMeasure"`
	CostCents     int64  `json:"costCents"`
}

// ScopeLabor is a labor entry.
type ScopeLabor struct {
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

// Narrative is the optional prose section of a scope.
type Narrative struct {
	ExistingConditions string   `json:"existingConditions,omitempty"`
	ProjectDescription string   `json:"projectDescription,omitempty"`
	ScopeOfWork        []string `json:"scopeOfWork,omitempty"`
}

// RegionalNote describes the applied regional pricing adjustment.
type RegionalNote struct {
	Multiplier        float64 `json:"multiplier"`
	Label             string  `json:"label"`
	AdjustmentPercent int     `json:"adjustmentPercent"`
	AppliesTo         string  `json:"appliesTo"`
}

// TaxNote describes the applied sales tax.
type TaxNote struct {
	IsTaxable    bool    `json:"isTaxable"`
	Rate         float64 `json:"rate"`
	TaxCents     int64   `json:"taxCents"`
	TaxableCents int64   `json:"taxableCents"`
	Regime       string  `json:"regime"`
	Notes        string  `json:"notes,omitempty"`
}

// CostBreakdown is the scope's money math, all integer cents.
type CostBreakdown struct {
	LaborCents      int64 `json:"laborCents"`
	MaterialCents   int64 `json:"materialCents"`
	SubtotalCents   int64 `json:"subtotalCents"`
	TaxCents        int64 `json:"taxCents"`
	UrgencyFeeCents int64 `json:"urgencyFeeCents"`
	TotalCents      int64 `json:"totalCents"`
}

// PrecedentRange summarizes historical actuals backing the estimate.
type PrecedentRange struct {
	JobCount     int     `json:"jobCount"`
	MinManHours  float64 `json:"minManHours"`
	MaxManHours  float64 `json:"maxManHours"`
	MinCostCents int64   `json:"minCostCents"`
	MaxCostCents int64   `json:"maxCostCents"`
}

// Diagnostics records what the pipeline detected and which data sources
// contributed to the figures.
type Diagnostics struct {
	DetectedService string          `json:"detectedService"`
	DetectedIssues  []string        `json:"detectedIssues,omitempty"`
	Confidence      float64         `json:"confidence"`
	Degraded        bool            `json:"degraded"`
	DataSourcesUsed []string        `json:"dataSourcesUsed"`
	PrecedentRange  *PrecedentRange `json:"precedentRange,omitempty"`
}

// StructuredScope is the final estimation output.
type StructuredScope struct {
	SessionID           uuid.UUID       `json:"sessionId"`
	Summary             string          `json:"summary"`
	Narrative           *Narrative      `json:"narrative,omitempty"`
	LineItems           []ScopeLineItem `json:"lineItems"`
	Materials           []ScopeMaterial `json:"materials"`
	Labor               []ScopeLabor    `json:"labor"`
	Permits             []string        `json:"permits,omitempty"`
	Disposal            string          `json:"disposal,omitempty"`
	AcceptanceCriteria  []string        `json:"acceptanceCriteria"`
	RequiredAfterPhotos []string        `json:"requiredAfterPhotos"`
	Clarifications      []string        `json:"clarifications,omitempty"`
	EstimatedManHours   float64         `json:"estimatedManHours"`
	Regional            RegionalNote    `json:"regional"`
	Tax                 TaxNote         `json:"tax"`
	Cost                CostBreakdown   `json:"cost"`
	Diagnostics         Diagnostics     `json:"diagnostics"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}
