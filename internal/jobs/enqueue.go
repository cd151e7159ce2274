package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/config"
	"github.com/briangreenhill/workoutplanner/internal/planner"
)

// Enqueuer submits plan requests to the llm queue.
type Enqueuer struct {
	client *asynq.Client
	cfg    config.WorkerConfig
	log    zerolog.Logger
}

func NewEnqueuer(client *asynq.Client, cfg config.WorkerConfig, log zerolog.Logger) *Enqueuer {
	return &Enqueuer{client: client, cfg: cfg, log: log}
}

// Enqueue schedules req and returns the job ID used to look up its result.
func (e *Enqueuer) Enqueue(ctx context.Context, req planner.Request) (string, error) {
	id := uuid.NewString()
	task, err := NewLLMPlanTask(req)
	if err != nil {
		return "", err
	}

	info, err := e.client.EnqueueContext(ctx, task,
		asynq.TaskID(id),
		asynq.Queue(QueueLLM),
		asynq.MaxRetry(MaxRetry),
		asynq.Timeout(e.cfg.JobTimeout),
		asynq.Retention(e.cfg.JobRetention),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", TaskLLMPlan, err)
	}

	e.log.Info().
		Str("job_id", info.ID).
		Str("queue", info.Queue).
		Int("max_retry", info.MaxRetry).
		Msg("plan job enqueued")
	return info.ID, nil
}
