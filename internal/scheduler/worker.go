package scheduler

import (
	"context"
	"fmt"

	"scopeworks_backend/platform/config"
	"scopeworks_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// JobScorer is implemented by the jobs service.
type JobScorer interface {
	ScoreJob(ctx context.Context, jobID uuid.UUID) error
}

// Worker consumes scoring tasks and drives the learning loop.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	scorer JobScorer
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, scorer JobScorer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		scorer: scorer,
		log:    log,
	}

	mux.HandleFunc(TaskScoreJob, w.handleScoreJob)

	return w, nil
}

func (w *Worker) handleScoreJob(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseScoreJobPayload(task)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		return err
	}

	if err := w.scorer.ScoreJob(ctx, jobID); err != nil {
		w.log.Error("job scoring failed", "job_id", payload.JobID, "error", err.Error())
		return err
	}
	w.log.Info("job scored", "job_id", payload.JobID)
	return nil
}

// Run serves tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
