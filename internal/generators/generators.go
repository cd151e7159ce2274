// Package generators defines the interchangeable plan generation strategies
package generators

import (
	"context"
	"sort"

	"github.com/briangreenhill/workoutplanner/internal/planner"
)

// Strategy names.
const (
	NameTemplate = "template"
	NameLLM      = "llm"
)

// Generator defines the interface that every plan generation strategy must implement
type Generator interface {
	// Name returns the strategy name (e.g., "template", "llm")
	Name() string

	// Description is shown to host agents when the strategy is exposed as a tool
	Description() string

	// Generate returns plan text for req
	Generate(ctx context.Context, req planner.Request) (string, error)
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry, replacing any with the same name
func (r *Registry) Register(g Generator) {
	r.generators[g.Name()] = g
}

// Get retrieves a generator by name
func (r *Registry) Get(name string) (Generator, bool) {
	g, exists := r.generators[name]
	return g, exists
}

// List returns all registered generator names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
