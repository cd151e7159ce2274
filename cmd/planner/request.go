package main

import (
	"github.com/spf13/cobra"

	"github.com/briangreenhill/workoutplanner/internal/planner"
)

// addRequestFlags registers the plan request fields shared by plan and llm.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("level", "l", "", "Fitness level: beginner, intermediate or advanced")
	cmd.Flags().StringP("goal", "g", "", "Training goal, e.g. \"weight loss\"")
	cmd.Flags().IntP("days", "d", 3, "Workout days per week (1-7)")
	cmd.Flags().StringP("equipment", "e", "no equipment", "Equipment: \"full gym\", \"basic dumbbells\" or \"no equipment\"")
	cmd.Flags().Bool("body-weight-only", false, "Use only body weight exercises")
	cmd.Flags().Int("duration", 0, "Minutes per session (omit for no advisory)")
	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("goal")
}

func requestFromFlags(cmd *cobra.Command) planner.Request {
	level, _ := cmd.Flags().GetString("level")
	goal, _ := cmd.Flags().GetString("goal")
	days, _ := cmd.Flags().GetInt("days")
	equipment, _ := cmd.Flags().GetString("equipment")
	bodyWeight, _ := cmd.Flags().GetBool("body-weight-only")

	req := planner.Request{
		FitnessLevel:   level,
		Goal:           goal,
		DaysPerWeek:    days,
		Equipment:      equipment,
		BodyWeightOnly: bodyWeight,
	}
	if cmd.Flags().Changed("duration") {
		d, _ := cmd.Flags().GetInt("duration")
		req.DurationMinutes = planner.Minutes(d)
	}
	if cmd.Flags().Lookup("info") != nil {
		req.AdditionalInfo, _ = cmd.Flags().GetString("info")
	}
	return req
}
