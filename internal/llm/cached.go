package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/cache"
)

type cached struct {
	Client
	store  cache.ReadWriter
	maxAge time.Duration
	log    zerolog.Logger
}

// Cached answers repeated prompts from store for up to maxAge. Cache failures are
// logged and never fail the call.
func Cached(c Client, store cache.ReadWriter, maxAge time.Duration, log zerolog.Logger) Client {
	return &cached{Client: c, store: store, maxAge: maxAge, log: log}
}

func (c *cached) Complete(ctx context.Context, prompt string) (string, error) {
	key := cache.KeyFor(c.Provider(), prompt)
	if entry, ok := c.store.Read(key, c.maxAge); ok {
		c.log.Debug().Str("provider", c.Provider()).Msg("llm cache hit")
		return entry.Body, nil
	}

	out, err := c.Client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := c.store.Write(key, &cache.Entry{Source: c.Provider(), Body: out}); err != nil {
		c.log.Warn().Err(err).Msg("llm cache write failed")
	}
	return out, nil
}
