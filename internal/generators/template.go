package generators

import (
	"context"

	"github.com/briangreenhill/workoutplanner/internal/planner"
)

// Template generates plans locally from the exercise catalog.
type Template struct {
	composer *planner.Composer
}

// NewTemplate wraps a composer. A nil composer uses planner.New().
func NewTemplate(c *planner.Composer) *Template {
	if c == nil {
		c = planner.New()
	}
	return &Template{composer: c}
}

func (t *Template) Name() string { return NameTemplate }

func (t *Template) Description() string {
	return "Creates a personalized workout plan based on fitness level, goals, schedule, available equipment, and preference for body weight exercises."
}

// Generate returns the rendered plan or a *planner.ValidationError.
func (t *Template) Generate(_ context.Context, req planner.Request) (string, error) {
	return t.composer.Compose(req)
}

// Ensure Template implements the Generator interface
var _ Generator = (*Template)(nil)
