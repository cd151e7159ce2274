package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/workoutplanner/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of planner",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "planner version %s\n", app.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
