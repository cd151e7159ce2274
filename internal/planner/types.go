// Package planner builds template-based workout plans from a fixed exercise catalog.
package planner

import "strings"

// FitnessLevel is an ordered training tier. Higher tiers include every lower tier's exercises.
type FitnessLevel int

const (
	Beginner FitnessLevel = iota
	Intermediate
	Advanced
)

// Levels lists the tiers from easiest to hardest.
var Levels = []FitnessLevel{Beginner, Intermediate, Advanced}

func (l FitnessLevel) String() string {
	switch l {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	default:
		return "unknown"
	}
}

func (l FitnessLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseFitnessLevel maps the tool-facing label to a tier. Matching is exact.
func ParseFitnessLevel(s string) (FitnessLevel, bool) {
	for _, l := range Levels {
		if l.String() == s {
			return l, true
		}
	}
	return 0, false
}

// Equipment is the category of gear available to the user.
type Equipment int

const (
	FullGym Equipment = iota
	BasicDumbbells
	NoEquipment
)

// EquipmentOptions lists every equipment category in catalog order.
var EquipmentOptions = []Equipment{FullGym, BasicDumbbells, NoEquipment}

// String returns the human label used in catalogs and rendered plans.
func (e Equipment) String() string {
	switch e {
	case FullGym:
		return "full gym"
	case BasicDumbbells:
		return "basic dumbbells"
	case NoEquipment:
		return "no equipment"
	default:
		return "unknown"
	}
}

// Key returns the snake_case identifier, e.g. "full_gym".
func (e Equipment) Key() string {
	return strings.ReplaceAll(e.String(), " ", "_")
}

func (e Equipment) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// ParseEquipment accepts either the label ("no equipment") or the key ("no_equipment").
func ParseEquipment(s string) (Equipment, bool) {
	for _, e := range EquipmentOptions {
		if s == e.String() || s == e.Key() {
			return e, true
		}
	}
	return 0, false
}

// Request is the caller-supplied input for a plan. Enum fields stay as raw strings so
// that validation can report them.
type Request struct {
	FitnessLevel    string `json:"fitness_level" mapstructure:"fitness_level"`
	Goal            string `json:"goal" mapstructure:"goal"`
	DaysPerWeek     int    `json:"days_per_week" mapstructure:"days_per_week"`
	Equipment       string `json:"equipment" mapstructure:"equipment"`
	BodyWeightOnly  bool   `json:"body_weight_only" mapstructure:"body_weight_only"`
	DurationMinutes *int   `json:"duration_minutes,omitempty" mapstructure:"duration_minutes"`
	// AdditionalInfo is only read by the delegating generator.
	AdditionalInfo string `json:"additional_info,omitempty" mapstructure:"additional_info"`
}

// Duration returns the requested session length and whether one was given.
// Zero and negative values count as absent.
func (r Request) Duration() (int, bool) {
	if r.DurationMinutes == nil || *r.DurationMinutes <= 0 {
		return 0, false
	}
	return *r.DurationMinutes, true
}

// Minutes is a convenience for building a Request with a duration.
func Minutes(n int) *int {
	return &n
}
