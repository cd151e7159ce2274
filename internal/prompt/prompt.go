// Package prompt renders the plan request sent to a text-generation provider.
package prompt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/planner"
)

const (
	unspecifiedDuration = "unspecified"
	noAdditionalInfo    = "None provided"
)

// Fields are the values substituted into the template.
type Fields struct {
	FitnessLevel   string
	Goal           string
	DaysPerWeek    int
	Equipment      string
	BodyWeightOnly string
	Duration       string
	AdditionalInfo string
}

// FieldsFor maps a request onto template fields, applying the defaults for optional values.
func FieldsFor(req planner.Request) Fields {
	f := Fields{
		FitnessLevel:   req.FitnessLevel,
		Goal:           req.Goal,
		DaysPerWeek:    req.DaysPerWeek,
		Equipment:      req.Equipment,
		BodyWeightOnly: pyBool(req.BodyWeightOnly),
		Duration:       unspecifiedDuration,
		AdditionalInfo: noAdditionalInfo,
	}
	if d, ok := req.Duration(); ok {
		f.Duration = strconv.Itoa(d)
	}
	if req.AdditionalInfo != "" {
		f.AdditionalInfo = req.AdditionalInfo
	}
	return f
}

// pyBool keeps the capitalised True/False the prompt has always carried.
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Builder renders prompts from the default template or a custom one on disk.
type Builder struct {
	tmpl *template.Template
}

var defaultBuilder = &Builder{tmpl: template.Must(template.New("plan").Parse(defaultTemplate))}

// Default returns a Builder for the built-in template.
func Default() *Builder {
	return defaultBuilder
}

// NewBuilder loads a custom template from path. An empty path yields the default builder.
func NewBuilder(path string) (*Builder, error) {
	if path == "" {
		return defaultBuilder, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}
	t, err := template.New("plan").Option("missingkey=error").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", path, err)
	}
	return &Builder{tmpl: t}, nil
}

// NewBuilderWithFallback loads path, logging and falling back to the default on error.
func NewBuilderWithFallback(path string, log zerolog.Logger) *Builder {
	b, err := NewBuilder(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("using default prompt template")
		return defaultBuilder
	}
	return b
}

// Build renders the prompt for req.
func (b *Builder) Build(req planner.Request) (string, error) {
	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, FieldsFor(req)); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}

// Build renders req with the default template.
func Build(req planner.Request) string {
	out, err := defaultBuilder.Build(req)
	if err != nil {
		// The built-in template only references Fields members.
		panic(err)
	}
	return out
}
