// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"scopeworks_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Intake Domain Events
// =============================================================================

// SessionCreated is published when a new estimation session is opened
// from a free-text service request.
type SessionCreated struct {
	BaseEvent
	SessionID   uuid.UUID
	ServiceType string
	Subcategory string
	Degraded    bool
}

// EventName returns the unique event identifier.
func (e SessionCreated) EventName() string { return "intake.session.created" }

// SessionReadyForScope is published when a session has no remaining
// eligible clarifying questions.
type SessionReadyForScope struct {
	BaseEvent
	SessionID uuid.UUID
}

// EventName returns the unique event identifier.
func (e SessionReadyForScope) EventName() string { return "intake.session.ready_for_scope" }

// =============================================================================
// Jobs Domain Events
// =============================================================================

// JobCompleted is published when actual outcomes are recorded for a job.
// Accuracy scoring may still be pending at this point.
type JobCompleted struct {
	BaseEvent
	JobID     uuid.UUID
	SessionID uuid.UUID
}

// EventName returns the unique event identifier.
func (e JobCompleted) EventName() string { return "jobs.job.completed" }

// JobScored is published once a completed job's accuracy score and tags
// have been computed and persisted. The precedent corpus grows here.
type JobScored struct {
	BaseEvent
	JobID         uuid.UUID
	ServiceType   string
	Subcategory   string
	AccuracyScore *float64
	Tags          []string
}

// EventName returns the unique event identifier.
func (e JobScored) EventName() string { return "jobs.job.scored" }
