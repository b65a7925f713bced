package service

import (
	"context"

	"github.com/google/uuid"
)

// SessionSnapshot is the estimation context's view of an intake session.
type SessionSnapshot struct {
	ID              uuid.UUID
	Description     string
	Address         *string
	Urgent          bool
	Status          string
	ServiceIntent   string
	ServiceType     string
	Subcategory     string
	Confidence      float64
	Clarifier       *string
	Degraded        bool
	Answers         map[string]string
	MissingRequired []string
	PhotoKeys       []string
}

// IntakeReader is the port through which estimation reads intake state.
type IntakeReader interface {
	Snapshot(ctx context.Context, sessionID uuid.UUID) (SessionSnapshot, error)
}

// EstimateWriter writes headline figures back onto the intake session so
// job completion can later compare estimates to actuals.
type EstimateWriter interface {
	SaveEstimate(ctx context.Context, sessionID uuid.UUID, manHours float64, costCents int64) error
}
