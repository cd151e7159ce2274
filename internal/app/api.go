package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/briangreenhill/workoutplanner/internal/generators"
	"github.com/briangreenhill/workoutplanner/internal/http/routes"
	"github.com/briangreenhill/workoutplanner/internal/jobs"
)

// RunAPI serves the HTTP API until ctx is cancelled.
func (a *App) RunAPI(ctx context.Context) error {
	opts := routes.ServerOptions{
		Cfg:        *a.Config,
		Generators: a.Generators,
		Catalog:    a.Composer.Catalog(),
		Metrics:    a.Metrics,
		Log:        a.Log,
	}

	if _, hasLLM := a.Generators.Get(generators.NameLLM); hasLLM && a.Config.Worker.Async {
		redisOpt := asynq.RedisClientOpt{Addr: a.Config.RedisAddr}
		client := asynq.NewClient(redisOpt)
		defer func() {
			if err := client.Close(); err != nil {
				a.Log.Error().Err(err).Msg("close asynq client")
			}
		}()
		inspector := asynq.NewInspector(redisOpt)
		defer func() {
			if err := inspector.Close(); err != nil {
				a.Log.Error().Err(err).Msg("close asynq inspector")
			}
		}()
		rdb := redis.NewClient(&redis.Options{Addr: a.Config.RedisAddr})
		defer func() {
			if err := rdb.Close(); err != nil {
				a.Log.Error().Err(err).Msg("close redis client")
			}
		}()

		opts.Jobs = jobs.NewEnqueuer(client, a.Config.Worker, a.Log)
		opts.Lookup = jobs.NewLookup(inspector)
		opts.Ready = routes.RedisReadiness(rdb)
	}

	s := routes.New(opts)
	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, a)
}

func serve(ctx context.Context, srv *http.Server, a *App) error {
	serverErrors := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", srv.Addr).Strs("generators", a.Generators.List()).Msg("starting api")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.Log.Info().Msg("shutting down api")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	}
}
