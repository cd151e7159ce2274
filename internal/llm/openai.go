package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4"
	DefaultTemperature   = float32(0.7)
)

// OpenAI calls an OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	http        *http.Client
	baseURL     string
	model       string
	temperature float32
}

// Option configures an OpenAI client.
type Option func(*OpenAI)

// WithHTTPClient sets the underlying client. Its transport and timeout are kept; the
// bearer token is layered on top.
func WithHTTPClient(h *http.Client) Option {
	return func(c *OpenAI) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *OpenAI) {
		if raw != "" {
			c.baseURL = strings.TrimRight(raw, "/")
		}
	}
}

func WithModel(model string) Option {
	return func(c *OpenAI) {
		if model != "" {
			c.model = model
		}
	}
}

func WithTemperature(t float32) Option {
	return func(c *OpenAI) { c.temperature = t }
}

// NewOpenAI creates a client authenticated with apiKey.
func NewOpenAI(apiKey string, opts ...Option) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	c := &OpenAI{
		http:        http.DefaultClient,
		baseURL:     DefaultOpenAIBaseURL,
		model:       DefaultOpenAIModel,
		temperature: DefaultTemperature,
	}
	for _, o := range opts {
		o(c)
	}

	base := c.http
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	c.http = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}))
	c.http.Timeout = base.Timeout
	return c, nil
}

func (c *OpenAI) Provider() string { return "openai" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends prompt as a single user message.
func (c *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: send request: %w", ErrProvider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrProvider, err)
	}
	if resp.StatusCode >= 300 {
		return "", &StatusError{Provider: c.Provider(), Code: resp.StatusCode, Body: string(raw)}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrProvider, err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

// Ensure OpenAI implements the Client interface
var _ Client = (*OpenAI)(nil)
