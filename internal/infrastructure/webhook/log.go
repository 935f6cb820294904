package webhook

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
)

// LogEmitter writes audit events to the log. Used when WEBHOOK_URL is not set.
type LogEmitter struct {
	log zerolog.Logger
}

func NewLogEmitter(log zerolog.Logger) *LogEmitter {
	return &LogEmitter{log: log}
}

func (e *LogEmitter) Emit(ctx context.Context, event ports.AuditEvent) error {
	e.log.Info().
		Str("event", event.Event).
		Str("user_id", event.UserID).
		Str("ip", event.IP).
		Bool("success", event.Success).
		Str("error", event.Err).
		Msg("audit event")
	return nil
}

var _ ports.WebhookEmitter = (*LogEmitter)(nil)
