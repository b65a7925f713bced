// Package transport defines request and response DTOs for the jobs API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"scopeworks_backend/internal/jobs/repository"
)

// CompleteJobRequest records the actual outcomes of a finished job.
type CompleteJobRequest struct {
	ActualManHours    *float64 `json:"actualManHours" validate:"omitempty,gte=0"`
	ActualCostCents   *int64   `json:"actualCostCents" validate:"omitempty,gte=0"`
	CustomerRating    *int     `json:"customerRating" validate:"omitempty,min=1,max=5"`
	IssuesEncountered *string  `json:"issuesEncountered" validate:"omitempty,max=2000"`
}

// ListJobsRequest filters the completed jobs listing.
type ListJobsRequest struct {
	ServiceType string `form:"serviceType"`
	Subcategory string `form:"subcategory"`
	Limit       int    `form:"limit"`
}

// CompletedJobResponse is the API shape of a completed job.
type CompletedJobResponse struct {
	ID                 uuid.UUID  `json:"id"`
	SessionID          uuid.UUID  `json:"sessionId"`
	ServiceType        string     `json:"serviceType"`
	Subcategory        string     `json:"subcategory"`
	Urgent             bool       `json:"urgent"`
	EstimatedManHours  *float64   `json:"estimatedManHours,omitempty"`
	EstimatedCostCents *int64     `json:"estimatedCostCents,omitempty"`
	ActualManHours     *float64   `json:"actualManHours,omitempty"`
	ActualCostCents    *int64     `json:"actualCostCents,omitempty"`
	CustomerRating     *int       `json:"customerRating,omitempty"`
	IssuesEncountered  *string    `json:"issuesEncountered,omitempty"`
	AccuracyScore      *float64   `json:"accuracyScore,omitempty"`
	HighQuality        *bool      `json:"highQuality,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	ScoredAt           *time.Time `json:"scoredAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// ToJobResponse maps a repository job to its API shape.
func ToJobResponse(j repository.CompletedJob) CompletedJobResponse {
	return CompletedJobResponse{
		ID:                 j.ID,
		SessionID:          j.SessionID,
		ServiceType:        j.ServiceType,
		Subcategory:        j.Subcategory,
		Urgent:             j.Urgent,
		EstimatedManHours:  j.EstimatedManHours,
		EstimatedCostCents: j.EstimatedCostCents,
		ActualManHours:     j.ActualManHours,
		ActualCostCents:    j.ActualCostCents,
		CustomerRating:     j.CustomerRating,
		IssuesEncountered:  j.IssuesEncountered,
		AccuracyScore:      j.AccuracyScore,
		HighQuality:        j.HighQuality,
		Tags:               j.Tags,
		ScoredAt:           j.ScoredAt,
		CreatedAt:          j.CreatedAt,
	}
}

// ToJobResponses maps a slice of jobs.
func ToJobResponses(jobs []repository.CompletedJob) []CompletedJobResponse {
	out := make([]CompletedJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, ToJobResponse(j))
	}
	return out
}
