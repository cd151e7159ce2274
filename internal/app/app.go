// Package app wires configuration into the generators shared by every binary.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/cache"
	"github.com/briangreenhill/workoutplanner/internal/config"
	"github.com/briangreenhill/workoutplanner/internal/generators"
	"github.com/briangreenhill/workoutplanner/internal/llm"
	"github.com/briangreenhill/workoutplanner/internal/metrics"
	"github.com/briangreenhill/workoutplanner/internal/planner"
	"github.com/briangreenhill/workoutplanner/internal/prompt"
)

// Version is overridden at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

type App struct {
	Config     *config.Config
	Log        zerolog.Logger
	Metrics    *metrics.Metrics // nil when metrics are disabled
	Composer   *planner.Composer
	Generators *generators.Registry
}

// Option customises App construction.
type Option func(*options)

type options struct {
	composer []planner.Option
	client   llm.Client
}

// WithComposerOptions passes options to the template composer (e.g. a seeded rand).
func WithComposerOptions(opts ...planner.Option) Option {
	return func(o *options) { o.composer = append(o.composer, opts...) }
}

// WithLLMClient uses c instead of building a client from cfg.LLM.
func WithLLMClient(c llm.Client) Option {
	return func(o *options) { o.client = c }
}

// New registers the template generator and, when a provider is configured, the
// delegating generator.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.CatalogPath != "" {
		cat, err := planner.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		o.composer = append([]planner.Option{planner.WithCatalog(cat)}, o.composer...)
		log.Info().Str("path", cfg.CatalogPath).Msg("using custom exercise catalog")
	}

	a := &App{
		Config:     cfg,
		Log:        log,
		Composer:   planner.New(o.composer...),
		Generators: generators.NewRegistry(),
	}
	if cfg.MetricsEnabled {
		a.Metrics = metrics.New()
	}

	a.Generators.Register(generators.Observe(generators.NewTemplate(a.Composer), a.Metrics, log))

	client := o.client
	if client == nil && cfg.HasLLM() {
		c, err := llm.New(ctx, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("create llm client: %w", err)
		}
		client = c
	}
	if client != nil {
		client = llm.Instrument(client, a.Metrics, log)
		if dir := cfg.LLM.CacheDir; dir != "" {
			store, err := cache.NewFileCache(dir)
			if err != nil {
				return nil, err
			}
			client = llm.Cached(client, store, cfg.LLM.CacheTTL, log)
		}
		prompts := prompt.NewBuilderWithFallback(cfg.PromptTemplatePath, log)
		a.Generators.Register(generators.Observe(generators.NewDelegating(client, prompts), a.Metrics, log))
		log.Debug().Str("provider", client.Provider()).Msg("llm generator enabled")
	}

	return a, nil
}

// Generator returns the named generator or an error naming what is missing.
func (a *App) Generator(name string) (generators.Generator, error) {
	g, ok := a.Generators.Get(name)
	if !ok {
		if name == generators.NameLLM {
			return nil, fmt.Errorf("%w: set LLM_API_KEY", llm.ErrNotConfigured)
		}
		return nil, fmt.Errorf("unknown generator %q", name)
	}
	return g, nil
}
