package planner

import (
	"math/rand/v2"
	"sync"
)

const (
	// ExercisesPerDay caps each day's selection.
	ExercisesPerDay = 5
	// SetsPerExercise is fixed for every assignment.
	SetsPerExercise = 3
)

// Composer validates requests and samples daily exercises from the cumulative pool.
// It is safe for concurrent use.
type Composer struct {
	catalog *Catalog

	mu  sync.Mutex
	rng *rand.Rand // nil uses the math/rand/v2 global source
}

// Option configures a Composer.
type Option func(*Composer)

// WithRand makes the composer draw from r, e.g. a seeded source in tests.
func WithRand(r *rand.Rand) Option {
	return func(c *Composer) { c.rng = r }
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(cat *Catalog) Option {
	return func(c *Composer) { c.catalog = cat }
}

// New creates a Composer backed by the default catalog.
func New(opts ...Option) *Composer {
	c := &Composer{catalog: DefaultCatalog()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Catalog returns the catalog the composer draws from.
func (c *Composer) Catalog() *Catalog {
	return c.catalog
}

// Build validates req and produces a structured plan.
func (c *Composer) Build(req Request) (*Plan, error) {
	level, equipment, err := Validate(req)
	if err != nil {
		return nil, err
	}

	pool := BuildPool(c.catalog, level, equipment, req.BodyWeightOnly)
	reps := RepScheme(req.Goal)

	plan := &Plan{
		Level:          level,
		Goal:           req.Goal,
		DaysPerWeek:    req.DaysPerWeek,
		Equipment:      equipment,
		BodyWeightOnly: req.BodyWeightOnly,
		Days:           make([]Day, 0, req.DaysPerWeek),
	}
	if d, ok := req.Duration(); ok {
		plan.DurationMinutes = d
	}

	for n := 1; n <= req.DaysPerWeek; n++ {
		names := c.sample(pool, ExercisesPerDay)
		day := Day{Number: n, Exercises: make([]Assignment, 0, len(names))}
		for _, name := range names {
			day.Exercises = append(day.Exercises, Assignment{Exercise: name, Sets: SetsPerExercise, Reps: reps})
		}
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

// Compose validates req and renders the plan text.
func (c *Composer) Compose(req Request) (string, error) {
	plan, err := c.Build(req)
	if err != nil {
		return "", err
	}
	return plan.String(), nil
}

// sample draws up to k pool entries uniformly without replacement. A name that occurs
// more than once in the pool is taken at most once per draw.
func (c *Composer) sample(pool []string, k int) []string {
	out := make([]string, 0, min(k, len(pool)))
	seen := make(map[string]struct{}, k)
	for _, i := range c.perm(len(pool)) {
		if len(out) == k {
			break
		}
		name := pool[i]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (c *Composer) perm(n int) []int {
	if c.rng == nil {
		return rand.Perm(n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Perm(n)
}

// ToolResult implements the tool contract: the plan text, or the validation message in
// its place.
func (c *Composer) ToolResult(req Request) string {
	out, err := c.Compose(req)
	if err != nil {
		if ve, ok := AsValidationError(err); ok {
			return ve.Message
		}
		return err.Error()
	}
	return out
}
