package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/config"
)

// NewServer configures an asynq server that only consumes the llm queue.
func NewServer(redis asynq.RedisConnOpt, cfg config.WorkerConfig, log zerolog.Logger) *asynq.Server {
	return asynq.NewServer(redis, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueLLM: 1,
		},
		Logger:   asynqLogger{log: log.With().Str("component", "asynq").Logger()},
		LogLevel: asynq.InfoLevel,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
			id, _ := asynq.GetTaskID(ctx)
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Error().Err(err).
				Str("job_id", id).
				Str("type", t.Type()).
				Int("retried", retried).
				Int("max_retry", maxRetry).
				Msg("plan job failed")
		}),
	})
}

// NewServeMux routes plan:llm tasks to h.
func NewServeMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TaskLLMPlan, h)
	return mux
}

// asynqLogger adapts zerolog to asynq.Logger.
type asynqLogger struct {
	log zerolog.Logger
}

func (l asynqLogger) Debug(args ...any) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
