package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/workoutplanner/internal/planner"
)

func TestBuild_Defaults(t *testing.T) {
	out := Build(planner.Request{
		FitnessLevel: "beginner",
		Goal:         "weight loss",
		DaysPerWeek:  3,
		Equipment:    "no equipment",
	})

	assert.Contains(t, out, "Fitness Level: beginner\n")
	assert.Contains(t, out, "Goal: weight loss\n")
	assert.Contains(t, out, "Days per Week: 3\n")
	assert.Contains(t, out, "Equipment: no equipment\n")
	assert.Contains(t, out, "Body Weight Only: False\n")
	assert.Contains(t, out, "Duration per Session: unspecified minutes\n")
	assert.Contains(t, out, "Additional Information: None provided\n")
}

func TestBuild_AllFields(t *testing.T) {
	out := Build(planner.Request{
		FitnessLevel:    "advanced",
		Goal:            "muscle gain",
		DaysPerWeek:     5,
		Equipment:       "full gym",
		BodyWeightOnly:  true,
		DurationMinutes: planner.Minutes(60),
		AdditionalInfo:  "recovering from a shoulder injury",
	})

	assert.Contains(t, out, "Body Weight Only: True\n")
	assert.Contains(t, out, "Duration per Session: 60 minutes\n")
	assert.Contains(t, out, "Additional Information: recovering from a shoulder injury\n")
}

func TestBuild_SixSections(t *testing.T) {
	out := Build(planner.Request{FitnessLevel: "beginner", DaysPerWeek: 1, Equipment: "full gym"})
	for i, section := range []string{
		"A brief introduction",
		"A day-by-day breakdown",
		"Proper form cues",
		"Progression suggestions",
		"Tips for warm-up and cool-down",
		"Any dietary advice",
	} {
		assert.Contains(t, out, string(rune('1'+i))+". "+section)
	}
	assert.True(t, strings.HasPrefix(out, "You are an expert personal trainer."))
}

func TestBuild_FieldsAreVerbatim(t *testing.T) {
	// No validation or normalisation on this path.
	out := Build(planner.Request{FitnessLevel: "expert", Goal: "<b>big</b>", DaysPerWeek: 12, Equipment: "home gym"})
	assert.Contains(t, out, "Fitness Level: expert\n")
	assert.Contains(t, out, "Goal: <b>big</b>\n")
	assert.Contains(t, out, "Days per Week: 12\n")
}

func TestBuild_WhitespaceAdditionalInfoIsKept(t *testing.T) {
	out := Build(planner.Request{FitnessLevel: "beginner", DaysPerWeek: 1, Equipment: "full gym", AdditionalInfo: "   "})
	assert.Contains(t, out, "Additional Information:    \n")
	assert.NotContains(t, out, "None provided")
}

func TestNewBuilder_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.FitnessLevel}}/{{.Duration}}"), 0o600))

	b, err := NewBuilder(path)
	require.NoError(t, err)
	out, err := b.Build(planner.Request{FitnessLevel: "intermediate", DurationMinutes: planner.Minutes(30)})
	require.NoError(t, err)
	assert.Equal(t, "intermediate/30", out)
}

func TestNewBuilder_Errors(t *testing.T) {
	_, err := NewBuilder(filepath.Join(t.TempDir(), "missing.tmpl"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.FitnessLevel"), 0o600))
	_, err = NewBuilder(path)
	assert.Error(t, err)
}

func TestNewBuilderWithFallback(t *testing.T) {
	b := NewBuilderWithFallback("/does/not/exist", zerolog.Nop())
	assert.Same(t, Default(), b)

	b = NewBuilderWithFallback("", zerolog.Nop())
	assert.Same(t, Default(), b)
}
