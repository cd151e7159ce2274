package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/generators"
	"github.com/briangreenhill/workoutplanner/internal/llm"
	"github.com/briangreenhill/workoutplanner/internal/planner"
)

// Handler runs plan:llm tasks through a generator and stores the text as the task result.
type Handler struct {
	gen generators.Generator
	log zerolog.Logger
}

func NewHandler(gen generators.Generator, log zerolog.Logger) *Handler {
	return &Handler{gen: gen, log: log}
}

// ProcessTask implements asynq.Handler. Failures that cannot succeed on retry are
// wrapped with asynq.SkipRetry.
func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p LLMPlanPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		h.log.Error().Err(err).Msg("bad plan payload")
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	id, _ := asynq.GetTaskID(ctx)
	log := h.log.With().Str("job_id", id).Str("strategy", h.gen.Name()).Logger()
	log.Info().Msg("plan job start")
	start := time.Now()

	text, err := h.gen.Generate(ctx, p.Request)
	duration := time.Since(start)
	if err != nil {
		if _, ok := planner.AsValidationError(err); ok || !llm.IsRetryable(err) {
			log.Warn().Err(err).Dur("duration", duration).Msg("permanent plan job failure (dropping job)")
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		log.Warn().Err(err).Dur("duration", duration).Msg("retryable plan job failure")
		return err
	}

	if w := t.ResultWriter(); w != nil {
		if _, err := w.Write([]byte(text)); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	log.Info().Dur("duration", duration).Int("bytes", len(text)).Msg("plan job done")
	return nil
}

// Ensure Handler implements asynq.Handler
var _ asynq.Handler = (*Handler)(nil)
