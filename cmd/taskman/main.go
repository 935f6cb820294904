package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskman",
	Short: "Task management API",
	Long: `taskman serves the task management HTTP API (users, projects, tasks) with JWT
authentication, and runs the background worker that delivers notification mail and
audit webhooks.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(workerCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log := newBootLogger()
		log.Error().Err(err).Msg("taskman")
		os.Exit(1)
	}
}
