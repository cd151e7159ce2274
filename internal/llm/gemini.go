package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// GeminiOption adjusts the SDK client configuration.
type GeminiOption func(*genai.ClientConfig)

func GeminiHTTPClient(h *http.Client) GeminiOption {
	return func(c *genai.ClientConfig) { c.HTTPClient = h }
}

func GeminiBaseURL(raw string) GeminiOption {
	return func(c *genai.ClientConfig) { c.HTTPOptions.BaseURL = raw }
}

// NewGemini creates a Gemini client. An empty model uses DefaultGeminiModel; the
// OpenAI default model name is not valid here.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" || model == DefaultOpenAIModel {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, o := range opts {
		o(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, temperature: temperature}, nil
}

func (g *Gemini) Provider() string { return "gemini" }

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string { return g.model }

// Complete sends prompt as a single user turn.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: g.Provider(), Code: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("%w: gemini generate: %w", ErrProvider, err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Ensure Gemini implements the Client interface
var _ Client = (*Gemini)(nil)
