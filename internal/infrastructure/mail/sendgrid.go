package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/danispp/Task-Management/internal/application/ports"
)

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
	log    zerolog.Logger
}

func NewSendGridSender(apiKey, fromName, fromEmail string, log zerolog.Logger) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromEmail),
		log:    log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	message := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail(toName, toEmail), plain, html)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	s.log.Info().Str("to", toEmail).Str("subject", subject).Int("status", resp.StatusCode).Msg("mail sent")
	return nil
}

var _ ports.MailSender = (*SendGridSender)(nil)
