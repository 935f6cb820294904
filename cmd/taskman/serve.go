package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danispp/Task-Management/internal/application/account"
	"github.com/danispp/Task-Management/internal/application/auth"
	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/application/project"
	"github.com/danispp/Task-Management/internal/application/task"
	"github.com/danispp/Task-Management/internal/config"
	infraauth "github.com/danispp/Task-Management/internal/infrastructure/auth"
	httprouter "github.com/danispp/Task-Management/internal/infrastructure/http"
	"github.com/danispp/Task-Management/internal/infrastructure/http/handlers"
	"github.com/danispp/Task-Management/internal/infrastructure/http/middleware"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/db"
	"github.com/danispp/Task-Management/internal/infrastructure/queue"
	"github.com/danispp/Task-Management/internal/infrastructure/security"
)

var (
	serveMigrate  bool
	serveNoWorker bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Run the HTTP API. When REDIS_URL is set the queue worker runs in the same process unless --no-worker is given.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply the database schema before serving")
	serveCmd.Flags().BoolVar(&serveNoWorker, "no-worker", false, "do not run the queue worker in-process")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)
	ctx := cmd.Context()

	secret, err := infraauth.LoadSigningSecret(cfg.JWT.Secret)
	if err != nil {
		return fmt.Errorf("load JWT secret: %w", err)
	}
	issuer, err := infraauth.NewTokenIssuer(secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Expiry)
	if err != nil {
		return fmt.Errorf("create token issuer: %w", err)
	}
	hasher, err := security.NewHasher(cfg.Password.Algorithm, cfg.Password.BcryptCost, security.Argon2Params{
		Memory:      cfg.Password.Argon2Memory,
		Iterations:  cfg.Password.Argon2Iterations,
		Parallelism: cfg.Password.Argon2Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		return fmt.Errorf("create password hasher: %w", err)
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()
	if serveMigrate && store.pool != nil {
		if err := db.Migrate(ctx, store.pool); err != nil {
			return err
		}
		log.Info().Msg("schema applied")
	}

	redisClient, asynqOpt, err := openRedis(ctx, cfg)
	if err != nil {
		return err
	}
	var enqueuer ports.TaskEnqueuer
	var worker *queue.Worker
	if redisClient != nil {
		defer redisClient.Close()
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		enqueuer = asynqEnq
		if !serveNoWorker {
			worker = queue.NewWorker(asynqOpt, cfg.Redis.WorkerConcurrency, newMailSender(cfg, log), newWebhookEmitter(cfg, log), log)
			if err := worker.Start(); err != nil {
				return fmt.Errorf("start worker: %w", err)
			}
			defer worker.Shutdown()
		}
	} else {
		log.Warn().Msg("REDIS_URL not set; notification mail and webhooks are disabled")
		enqueuer = queue.NewNoopEnqueuer(log)
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     handlers.NewAuthHandler(auth.NewRegisterUser(store.tx, store.users, hasher, issuer, enqueuer), auth.NewLogin(store.users, hasher, issuer), enqueuer, log),
		HealthHandler:   handlers.NewHealthHandler(store.pool, redisClient, cfg.Database.Driver),
		UsersHandler:    newUsersHandler(store, enqueuer, log),
		ProjectsHandler: newProjectsHandler(store, log),
		TasksHandler:    newTasksHandler(store, enqueuer, log),
		RequireJWT:      middleware.NewAuthValidator(issuer).Handler,
		CORS:            middleware.CORS(cfg.Server.AllowedOrigins),
		Secure:          middleware.SecurityHeaders(cfg.Secure.IsDevelopment),
		Log:             log,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return listenAndServe(srv, log)
}

func newUsersHandler(s *storage, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *handlers.UsersHandler {
	return handlers.NewUsersHandler(
		account.NewGetCurrentUser(s.users),
		account.NewListUsers(s.users),
		account.NewDeleteAccount(s.tx, s.users),
		enqueuer,
		log,
	)
}

func newProjectsHandler(s *storage, log zerolog.Logger) *handlers.ProjectsHandler {
	guard := ownership.NewGuard(s.projects, s.tasks)
	return handlers.NewProjectsHandler(handlers.ProjectUseCases{
		Create: project.NewCreateProject(s.tx, s.users, s.projects),
		Get:    project.NewGetProject(s.tx, guard, s.users, s.tasks),
		List:   project.NewListProjects(s.projects),
		Update: project.NewUpdateProject(s.tx, guard, s.projects),
		Delete: project.NewDeleteProject(s.tx, guard, s.projects),
	}, log)
}

func newTasksHandler(s *storage, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *handlers.TasksHandler {
	guard := ownership.NewGuard(s.projects, s.tasks)
	return handlers.NewTasksHandler(handlers.TaskUseCases{
		Create:        task.NewCreateTask(s.tx, guard, s.users, s.tasks, enqueuer),
		Get:           task.NewGetTask(guard),
		List:          task.NewListTasks(s.tasks),
		ListByProject: task.NewListProjectTasks(s.tx, guard, s.tasks),
		Update:        task.NewUpdateTask(s.tx, guard, s.users, s.tasks, enqueuer),
		UpdateStatus:  task.NewUpdateTaskStatus(s.tx, guard, s.tasks),
		Delete:        task.NewDeleteTask(s.tx, guard, s.tasks),
	}, log)
}

func listenAndServe(srv *http.Server, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
	return nil
}
