package app

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/briangreenhill/workoutplanner/internal/generators"
	"github.com/briangreenhill/workoutplanner/internal/jobs"
)

// RunWorker processes queued plan jobs until ctx is cancelled.
func (a *App) RunWorker(ctx context.Context) error {
	gen, err := a.Generator(generators.NameLLM)
	if err != nil {
		return err
	}

	srv := jobs.NewServer(asynq.RedisClientOpt{Addr: a.Config.RedisAddr}, a.Config.Worker, a.Log)
	if err := srv.Start(jobs.NewServeMux(jobs.NewHandler(gen, a.Log))); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	a.Log.Info().
		Int("concurrency", a.Config.Worker.Concurrency).
		Str("queue", jobs.QueueLLM).
		Msg("worker running")

	<-ctx.Done()
	a.Log.Info().Msg("shutting down worker")
	srv.Shutdown()
	return nil
}
