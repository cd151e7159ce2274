// Package llm talks to external text-generation services. Responses are returned verbatim.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/briangreenhill/workoutplanner/internal/config"
)

// Client sends one prompt and returns the generated text unmodified.
type Client interface {
	Provider() string
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrProvider wraps every failure that originates at or on the way to the provider.
	ErrProvider = errors.New("llm provider error")
	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = fmt.Errorf("%w: empty response", ErrProvider)
	// ErrNotConfigured means no API key was supplied.
	ErrNotConfigured = errors.New("llm provider not configured")
)

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrProvider
}

// IsRetryable reports whether a failed call may succeed later: rate limiting, server
// errors, timeouts and network failures. Auth failures and bad requests are permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// New builds the client selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey,
			WithBaseURL(cfg.BaseURL),
			WithModel(cfg.Model),
			WithTemperature(cfg.Temperature),
			WithHTTPClient(httpClient),
		)
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.Temperature, GeminiHTTPClient(httpClient))
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
