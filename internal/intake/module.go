// Package intake provides the intake bounded context module: estimation
// sessions, intent classification, and the clarifying-question flow.
package intake

import (
	apphttp "scopeworks_backend/internal/http"
	"scopeworks_backend/internal/intake/agent"
	"scopeworks_backend/internal/intake/handler"
	"scopeworks_backend/internal/intake/repository"
	"scopeworks_backend/internal/intake/service"
	"scopeworks_backend/internal/events"
	"scopeworks_backend/platform/logger"
	"scopeworks_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the intake bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule wires the intake context. photos may be nil when object
// storage is not configured; photo uploads then return 503.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, bus events.Bus, oracle agent.Oracle, photos service.PhotoStore) *Module {
	repo := repository.New(pool)
	classifier := agent.NewClassifier(oracle, log)
	svc := service.New(repo, classifier, photos, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the service layer for cross-module ports.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts the intake routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	sessions := ctx.V1.Group("/sessions")
	// Session creation invokes the classification oracle, so it carries
	// the oracle rate limit.
	sessions.POST("", ctx.OracleRateLimiter.RateLimit(), m.handler.CreateSession)
	sessions.GET("/:id", m.handler.GetSession)
	sessions.GET("/:id/next-question", m.handler.NextQuestion)
	sessions.POST("/:id/answers", m.handler.SubmitAnswer)
	sessions.POST("/:id/photos", m.handler.CreatePhotoUpload)
}
