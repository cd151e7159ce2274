package planner

import (
	"fmt"
	"strings"
)

// CoolDown is appended to every day.
const CoolDown = "5-10 minutes of light stretching"

// Assignment is one exercise on one day.
type Assignment struct {
	Exercise string `json:"exercise"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
}

// Day is one training day.
type Day struct {
	Number    int          `json:"day"`
	Exercises []Assignment `json:"exercises"`
}

// Plan is a generated week of training.
type Plan struct {
	Level           FitnessLevel `json:"fitness_level"`
	Goal            string       `json:"goal"`
	DaysPerWeek     int          `json:"days_per_week"`
	Equipment       Equipment    `json:"equipment"`
	BodyWeightOnly  bool         `json:"body_weight_only"`
	DurationMinutes int          `json:"duration_minutes,omitempty"`
	Days            []Day        `json:"days"`
}

// EquipmentLabel is the header label: the equipment, or "body weight only".
func (p *Plan) EquipmentLabel() string {
	if p.BodyWeightOnly {
		return "body weight only"
	}
	return p.Equipment.String()
}

// String renders the plan as the text block handed back to callers.
func (p *Plan) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Workout Plan (%s level, %s focus, %d days/week, ", p.Level, p.Goal, p.DaysPerWeek)
	fmt.Fprintf(&b, "%s):\n\n", p.EquipmentLabel())

	for _, d := range p.Days {
		fmt.Fprintf(&b, "Day %d:\n", d.Number)
		for _, a := range d.Exercises {
			fmt.Fprintf(&b, "- %s: %d sets of %s\n", a.Exercise, a.Sets, a.Reps)
		}
		fmt.Fprintf(&b, "- Cool-down: %s\n\n", CoolDown)
	}

	if p.DurationMinutes > 0 {
		fmt.Fprintf(&b, "Aim to complete each workout session in about %d minutes.\n", p.DurationMinutes)
	}
	return b.String()
}
