package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves POST /v1/plans and POST /v1/plans/llm. With WORKER_ASYNC=true delegating
requests are queued in Redis and completed by "planner worker".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			a.Config.Port = port
		}
		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.RunAPI(ctx)
	},
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process queued plan jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.RunWorker(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, workerCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
}
