package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/metrics"
)

type instrumented struct {
	Client
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// Instrument wraps c so every call is timed, counted and logged.
func Instrument(c Client, m *metrics.Metrics, log zerolog.Logger) Client {
	return &instrumented{Client: c, metrics: m, log: log}
}

func (i *instrumented) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := i.Client.Complete(ctx, prompt)
	elapsed := time.Since(start)
	i.metrics.ObserveLLM(i.Provider(), elapsed, err)

	if err != nil {
		i.log.Warn().Err(err).
			Str("provider", i.Provider()).
			Dur("duration", elapsed).
			Bool("retryable", IsRetryable(err)).
			Msg("llm completion failed")
		return "", err
	}
	i.log.Debug().
		Str("provider", i.Provider()).
		Dur("duration", elapsed).
		Int("prompt_bytes", len(prompt)).
		Int("response_bytes", len(out)).
		Msg("llm completion")
	return out, nil
}
