package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
)

const (
	TypeWelcomeEmail    = "email:welcome"
	TypeAssignmentEmail = "email:task_assigned"
	TypeWebhook         = "webhook:emit"
)

const maxRetry = 5

// welcomePayload is enqueued after a successful registration.
type welcomePayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// assignmentPayload is enqueued when a task gets a new assignee.
type assignmentPayload struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	TaskTitle   string `json:"task_title"`
	ProjectName string `json:"project_name"`
}

type webhookPayload struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisConnOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueWelcomeEmail(ctx context.Context, email, fullName string) error {
	return q.enqueue(ctx, TypeWelcomeEmail, welcomePayload{Email: email, FullName: fullName})
}

func (q *TaskEnqueuer) EnqueueAssignmentEmail(ctx context.Context, email, fullName, taskTitle, projectName string) error {
	return q.enqueue(ctx, TypeAssignmentEmail, assignmentPayload{
		Email:       email,
		FullName:    fullName,
		TaskTitle:   taskTitle,
		ProjectName: projectName,
	})
}

func (q *TaskEnqueuer) EnqueueWebhook(ctx context.Context, event string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	return q.enqueue(ctx, TypeWebhook, webhookPayload{Event: event, Payload: raw})
}

func (q *TaskEnqueuer) enqueue(ctx context.Context, typename string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", typename, err)
	}
	task := asynq.NewTask(typename, body, asynq.MaxRetry(maxRetry))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("type", typename).Msg("enqueue failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
