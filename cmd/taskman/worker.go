package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danispp/Task-Management/internal/config"
	"github.com/danispp/Task-Management/internal/infrastructure/queue"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the queue worker only",
	Long:  "Process notification mail and webhook jobs until SIGINT or SIGTERM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := newLogger(cfg)
		redisClient, asynqOpt, err := openRedis(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if redisClient == nil {
			return errors.New("worker needs REDIS_URL")
		}
		defer redisClient.Close()
		w := queue.NewWorker(asynqOpt, cfg.Redis.WorkerConcurrency, newMailSender(cfg, log), newWebhookEmitter(cfg, log), log)
		log.Info().Int("concurrency", cfg.Redis.WorkerConcurrency).Msg("worker starting")
		return w.Run()
	},
}
