package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/workoutplanner/internal/app"
	"github.com/briangreenhill/workoutplanner/internal/config"
	"github.com/briangreenhill/workoutplanner/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Generate personalized workout plans",
	Long: `planner builds weekly workout plans from a fixed exercise catalog, or delegates
plan writing to a configured text-generation provider.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
}

// newApp loads configuration and wires the generators for a command.
func newApp(cmd *cobra.Command, opts ...app.Option) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	log := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Writer: cmd.ErrOrStderr()})
	return app.New(cmdContext(cmd), cfg, log, opts...)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
