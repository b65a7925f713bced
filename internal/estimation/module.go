// Package estimation provides the estimation bounded context module:
// scope generation from standards, precedents, regional pricing, and tax.
package estimation

import (
	"context"

	"scopeworks_backend/internal/estimation/adapter"
	"scopeworks_backend/internal/estimation/handler"
	"scopeworks_backend/internal/estimation/precedent"
	"scopeworks_backend/internal/estimation/service"
	"scopeworks_backend/internal/estimation/standards"
	"scopeworks_backend/internal/events"
	apphttp "scopeworks_backend/internal/http"
	intakerepo "scopeworks_backend/internal/intake/repository"
	"scopeworks_backend/platform/config"
	"scopeworks_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the estimation bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	log     *logger.Logger
}

// NewModule wires the estimation context. It reads intake state through
// an anti-corruption adapter rather than sharing repositories.
func NewModule(pool *pgxpool.Pool, intakeRepo intakerepo.Repository, cfg config.EstimationConfig, log *logger.Logger) *Module {
	bridge := adapter.NewIntakeAdapter(intakeRepo)
	svc := service.New(bridge, bridge, standards.New(pool), precedent.New(pool), cfg, log)

	return &Module{handler: handler.New(svc), service: svc, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "estimation"
}

// RegisterHandlers subscribes to domain events that grow the precedent
// corpus this context estimates from.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.JobScored{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.JobScored:
		m.log.Info("precedent corpus updated",
			"job_id", e.JobID.String(),
			"service_type", e.ServiceType,
			"subcategory", e.Subcategory,
			"accuracy_score", e.AccuracyScore,
			"tags", e.Tags,
		)
		return nil
	default:
		return nil
	}
}

// RegisterRoutes mounts the estimation routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/sessions/:id/scope", m.handler.GetScope)
}
