package generators

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/metrics"
	"github.com/briangreenhill/workoutplanner/internal/planner"
)

type observed struct {
	Generator
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// Observe wraps g so each call is logged and counted.
func Observe(g Generator, m *metrics.Metrics, log zerolog.Logger) Generator {
	return &observed{Generator: g, metrics: m, log: log}
}

func (o *observed) Generate(ctx context.Context, req planner.Request) (string, error) {
	start := time.Now()
	out, err := o.Generator.Generate(ctx, req)

	level, equipment := labels(req)
	ev := o.log.With().
		Str("strategy", o.Name()).
		Str("fitness_level", level).
		Str("equipment", equipment).
		Int("days_per_week", req.DaysPerWeek).
		Bool("body_weight_only", req.BodyWeightOnly).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		if ve, ok := planner.AsValidationError(err); ok {
			o.metrics.ValidationFailed(ve.KindName())
			ev.Warn().Str("kind", ve.KindName()).Msg("plan request rejected")
			return "", err
		}
		ev.Error().Err(err).Msg("plan generation failed")
		return "", err
	}

	o.metrics.PlanGenerated(o.Name(), level, equipment)
	ev.Info().Msg("plan generated")
	return out, nil
}

// labels keeps metric cardinality bounded: unrecognised values collapse to "other".
func labels(req planner.Request) (string, string) {
	level, equipment := "other", "other"
	if l, ok := planner.ParseFitnessLevel(req.FitnessLevel); ok {
		level = l.String()
	}
	if e, ok := planner.ParseEquipment(req.Equipment); ok {
		equipment = e.String()
	}
	return level, equipment
}
