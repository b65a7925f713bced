// Package jobs provides the jobs bounded context module: job completion
// and the accuracy-scoring learning loop.
package jobs

import (
	"context"

	"scopeworks_backend/internal/events"
	apphttp "scopeworks_backend/internal/http"
	intakerepo "scopeworks_backend/internal/intake/repository"
	"scopeworks_backend/internal/jobs/adapter"
	"scopeworks_backend/internal/jobs/handler"
	"scopeworks_backend/internal/jobs/repository"
	"scopeworks_backend/internal/jobs/service"
	"scopeworks_backend/platform/logger"
	"scopeworks_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the jobs bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule wires the jobs context. enqueuer may be nil, in which case
// accuracy scoring runs inline at completion time.
func NewModule(pool *pgxpool.Pool, intakeRepo intakerepo.Repository, enqueuer service.ScoreEnqueuer, val *validator.Validator, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	bridge := adapter.NewIntakeAdapter(intakeRepo)
	svc := service.New(repo, bridge, bridge, enqueuer, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "jobs"
}

// RegisterHandlers subscribes the scoring pipeline to domain events.
// Job completion publishes JobCompleted; scoring hangs off that event
// rather than off the request path directly.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.JobCompleted{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.JobCompleted:
		return m.service.ScheduleScoring(ctx, e.JobID)
	default:
		return nil
	}
}

// Service returns the service layer for the scoring worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the jobs routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/sessions/:id/complete", m.handler.CompleteJob)
	ctx.V1.GET("/jobs", m.handler.ListJobs)
}
