package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/config"
	"github.com/danispp/Task-Management/internal/infrastructure/mail"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/memory"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/postgres"
	"github.com/danispp/Task-Management/internal/infrastructure/webhook"
)

// storage holds the repositories for the configured driver. pool is nil in memory mode.
type storage struct {
	pool     *pgxpool.Pool
	tx       ports.Transactor
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
}

func (s *storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Database.Driver == config.StorageMemory {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &storage{
			tx:       memory.Transactor{},
			users:    memory.NewUserRepository(store),
			projects: memory.NewProjectRepository(store),
			tasks:    memory.NewTaskRepository(store),
		}, nil
	}
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &storage{
		pool:     pool,
		tx:       postgres.NewTransactor(pool),
		users:    postgres.NewUserRepository(pool),
		projects: postgres.NewProjectRepository(pool),
		tasks:    postgres.NewTaskRepository(pool),
	}, nil
}

// openRedis returns nil, nil when REDIS_URL is unset.
func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, asynq.RedisConnOpt, error) {
	if cfg.Redis.URL == "" {
		return nil, nil, nil
	}
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	asynqOpt := asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}
	return client, asynqOpt, nil
}

func newMailSender(cfg *config.Config, log zerolog.Logger) ports.MailSender {
	if cfg.Mail.SendGridAPIKey == "" {
		return mail.NewLogSender(log)
	}
	return mail.NewSendGridSender(cfg.Mail.SendGridAPIKey, cfg.Mail.FromName, cfg.Mail.FromAddress, log)
}

func newWebhookEmitter(cfg *config.Config, log zerolog.Logger) ports.WebhookEmitter {
	if cfg.Webhook.URL == "" {
		return webhook.NewLogEmitter(log)
	}
	var opts []webhook.Option
	if cfg.Webhook.Secret != "" {
		opts = append(opts, webhook.WithSecret(cfg.Webhook.Secret))
	}
	return webhook.NewEmitter(cfg.Webhook.URL, opts...)
}
