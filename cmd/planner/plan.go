package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/workoutplanner/internal/app"
	"github.com/briangreenhill/workoutplanner/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a plan from the exercise catalog",
	Long: `Builds a plan locally: every day draws up to five distinct exercises from the
catalog tiers at or below the requested fitness level.

Invalid input prints the validation message and exits non-zero.`,
	Example: `  planner plan --level beginner --goal "weight loss" --days 3 --equipment "no equipment"
  planner plan -l advanced -g strength -d 5 -e full_gym --duration 60 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []app.Option
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			opts = append(opts, app.WithComposerOptions(planner.WithRand(rand.New(rand.NewPCG(seed, seed)))))
		}
		a, err := newApp(cmd, opts...)
		if err != nil {
			return err
		}

		req := requestFromFlags(cmd)
		plan, err := a.Composer.Build(req)
		if ve, ok := planner.AsValidationError(err); ok {
			return fmt.Errorf("%s", ve.Message)
		}
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), plan.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addRequestFlags(planCmd)
	planCmd.Flags().Uint64("seed", 0, "Seed the exercise draw for reproducible output")
	planCmd.Flags().Bool("json", false, "Print the structured plan as JSON")
}
