package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/ports"
)

// LogSender writes messages to the log instead of sending them. Used when no SendGrid key is set.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	s.log.Info().
		Str("to", toEmail).
		Str("subject", subject).
		Str("body", plain).
		Msg("mail (log only; set SENDGRID_API_KEY for real delivery)")
	return nil
}

var _ ports.MailSender = (*LogSender)(nil)
