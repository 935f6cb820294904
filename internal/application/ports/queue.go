package ports

import "context"

// TaskEnqueuer enqueues async jobs (email, webhook).
type TaskEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, email, fullName string) error
	EnqueueAssignmentEmail(ctx context.Context, email, fullName, taskTitle, projectName string) error
	EnqueueWebhook(ctx context.Context, event string, payload interface{}) error
}

// MailSender delivers a single message. Used by the queue worker.
type MailSender interface {
	Send(ctx context.Context, toEmail, toName, subject, plain, html string) error
}
