package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
)

// NoopEnqueuer drops jobs when Redis is not configured. Each dropped job is logged at debug.
type NoopEnqueuer struct {
	log zerolog.Logger
}

func NewNoopEnqueuer(log zerolog.Logger) *NoopEnqueuer {
	return &NoopEnqueuer{log: log}
}

func (q *NoopEnqueuer) EnqueueWelcomeEmail(ctx context.Context, email, fullName string) error {
	q.log.Debug().Str("type", TypeWelcomeEmail).Str("email", email).Msg("job dropped, no queue configured")
	return nil
}

func (q *NoopEnqueuer) EnqueueAssignmentEmail(ctx context.Context, email, fullName, taskTitle, projectName string) error {
	q.log.Debug().Str("type", TypeAssignmentEmail).Str("email", email).Msg("job dropped, no queue configured")
	return nil
}

func (q *NoopEnqueuer) EnqueueWebhook(ctx context.Context, event string, payload interface{}) error {
	q.log.Debug().Str("type", TypeWebhook).Str("event", event).Msg("job dropped, no queue configured")
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
