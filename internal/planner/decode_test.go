package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest(map[string]any{
		"fitness_level":    "intermediate",
		"goal":             "muscle gain",
		"days_per_week":    float64(4),
		"equipment":        "basic dumbbells",
		"body_weight_only": true,
		"duration_minutes": float64(45),
		"additional_info":  "bad knee",
		"unknown":          "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "intermediate", req.FitnessLevel)
	assert.Equal(t, 4, req.DaysPerWeek)
	assert.True(t, req.BodyWeightOnly)
	d, ok := req.Duration()
	assert.True(t, ok)
	assert.Equal(t, 45, d)
	assert.Equal(t, "bad knee", req.AdditionalInfo)
}

func TestDecodeRequest_WeakTypesAndAlias(t *testing.T) {
	req, err := DecodeRequest(map[string]any{
		"fitness_level":    "beginner",
		"days_per_week":    "3",
		"equipment":        "no_equipment",
		"body_weight_only": "false",
		"duration":         30,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, req.DaysPerWeek)
	assert.False(t, req.BodyWeightOnly)
	d, ok := req.Duration()
	assert.True(t, ok)
	assert.Equal(t, 30, d)
}

func TestDecodeRequest_OmittedDuration(t *testing.T) {
	req, err := DecodeRequest(map[string]any{"fitness_level": "beginner", "days_per_week": 2, "equipment": "full gym"})
	require.NoError(t, err)
	assert.Nil(t, req.DurationMinutes)
	_, ok := req.Duration()
	assert.False(t, ok)
}

func TestDecodeRequest_BadType(t *testing.T) {
	_, err := DecodeRequest(map[string]any{"days_per_week": []string{"x"}})
	assert.Error(t, err)
}
