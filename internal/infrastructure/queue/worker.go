package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
)

// Worker runs Asynq task handlers for notification mail and webhooks.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	mail    ports.MailSender
	webhook ports.WebhookEmitter
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisConnOpt, concurrency int, mail ports.MailSender, webhook ports.WebhookEmitter, log zerolog.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 2
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		LogLevel:    asynq.InfoLevel,
	})
	w := &Worker{srv: srv, mail: mail, webhook: webhook, log: log}
	w.mux = NewServeMux(w)
	return w
}

// NewServeMux routes each task type to its handler on w.
func NewServeMux(w *Worker) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeWelcomeEmail, w.HandleWelcomeEmail)
	mux.HandleFunc(TypeAssignmentEmail, w.HandleAssignmentEmail)
	mux.HandleFunc(TypeWebhook, w.HandleWebhook)
	return mux
}

// NewHandlers builds a Worker with no server, for processing tasks directly.
func NewHandlers(mail ports.MailSender, webhook ports.WebhookEmitter, log zerolog.Logger) *Worker {
	return &Worker{mail: mail, webhook: webhook, log: log}
}

func (w *Worker) HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p welcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("welcome task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	subject := "Welcome to Task Manager"
	plain := fmt.Sprintf("Hi %s, your account is ready. Create a project to get started.", p.FullName)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Create a project to get started.</p>", html.EscapeString(p.FullName))
	return w.mail.Send(ctx, p.Email, p.FullName, subject, plain, body)
}

func (w *Worker) HandleAssignmentEmail(ctx context.Context, t *asynq.Task) error {
	var p assignmentPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("assignment task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	subject := fmt.Sprintf("You were assigned: %s", p.TaskTitle)
	plain := fmt.Sprintf("Hi %s, you were assigned %q in project %s.", p.FullName, p.TaskTitle, p.ProjectName)
	// names and titles are user input
	body := fmt.Sprintf("<p>Hi %s,</p><p>You were assigned <strong>%s</strong> in project %s.</p>",
		html.EscapeString(p.FullName), html.EscapeString(p.TaskTitle), html.EscapeString(p.ProjectName))
	return w.mail.Send(ctx, p.Email, p.FullName, subject, plain, body)
}

func (w *Worker) HandleWebhook(ctx context.Context, t *asynq.Task) error {
	var p webhookPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("webhook task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	var event ports.AuditEvent
	if err := json.Unmarshal(p.Payload, &event); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if event.Event == "" {
		event.Event = p.Event
	}
	err := w.webhook.Emit(ctx, event)
	var perm interface{ Retryable() bool }
	if errors.As(err, &perm) && !perm.Retryable() {
		w.log.Warn().Err(err).Str("event", event.Event).Msg("webhook rejected, not retrying")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Start processes tasks in the background; pair with Shutdown.
func (w *Worker) Start() error {
	return w.srv.Start(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
