package generators

import (
	"context"
	"fmt"

	"github.com/briangreenhill/workoutplanner/internal/llm"
	"github.com/briangreenhill/workoutplanner/internal/planner"
	"github.com/briangreenhill/workoutplanner/internal/prompt"
)

// Delegating hands plan authoring to a text-generation service. Request fields go into
// the prompt unvalidated and the service's text comes back unmodified.
type Delegating struct {
	client  llm.Client
	prompts *prompt.Builder
}

// NewDelegating creates the strategy. A nil builder uses the built-in template.
func NewDelegating(client llm.Client, prompts *prompt.Builder) *Delegating {
	if prompts == nil {
		prompts = prompt.Default()
	}
	return &Delegating{client: client, prompts: prompts}
}

func (d *Delegating) Name() string { return NameLLM }

func (d *Delegating) Description() string {
	return "Creates a personalized workout plan using AI, based on fitness level, goals, schedule, available equipment, and preferences."
}

// Generate renders the prompt and returns the provider's raw response.
func (d *Delegating) Generate(ctx context.Context, req planner.Request) (string, error) {
	p, err := d.prompts.Build(req)
	if err != nil {
		return "", err
	}
	out, err := d.client.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("generate plan via %s: %w", d.client.Provider(), err)
	}
	return out, nil
}

// Ensure Delegating implements the Generator interface
var _ Generator = (*Delegating)(nil)
