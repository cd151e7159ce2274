package planner

import "strings"

// Validate runs the input checks in order (fitness level, day count, equipment) and
// reports only the first failure.
func Validate(req Request) (FitnessLevel, Equipment, error) {
	level, ok := ParseFitnessLevel(req.FitnessLevel)
	if !ok {
		return 0, 0, &ValidationError{Kind: ErrInvalidFitnessLevel, Message: MsgInvalidFitnessLevel}
	}
	if req.DaysPerWeek < 1 || req.DaysPerWeek > 7 {
		return 0, 0, &ValidationError{Kind: ErrInvalidDayCount, Message: MsgInvalidDayCount}
	}
	equipment, ok := ParseEquipment(req.Equipment)
	if !ok {
		return 0, 0, &ValidationError{Kind: ErrInvalidEquipment, Message: MsgInvalidEquipment}
	}
	return level, equipment, nil
}

// BuildPool concatenates the catalog entries for every tier from beginner up to level.
// Tier order and in-tier order are preserved; names repeated across tiers are kept.
func BuildPool(c *Catalog, level FitnessLevel, equipment Equipment, bodyWeightOnly bool) []string {
	var pool []string
	for _, l := range Levels {
		if l > level {
			break
		}
		if bodyWeightOnly {
			pool = append(pool, c.bodyWeightCell(l)...)
		} else {
			pool = append(pool, c.cell(l, equipment)...)
		}
	}
	return pool
}

// Rep schemes.
const (
	RepsStrength  = "10-15 reps"
	RepsEndurance = "30-60 seconds"
)

// RepScheme picks the rep range from the goal text alone. Goals mentioning "weight" or
// "muscle" in any case get reps; everything else, including an empty goal, gets timed sets.
func RepScheme(goal string) string {
	g := strings.ToLower(goal)
	if strings.Contains(g, "weight") || strings.Contains(g, "muscle") {
		return RepsStrength
	}
	return RepsEndurance
}
