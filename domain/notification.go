package domain

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	FindUnreadByUser(ctx context.Context, userUUID string) (*[]Notification, error)
	MarkAsRead(ctx context.Context, uuid string) (*Notification, error)
	MarkAllAsRead(ctx context.Context, uuids []string) error
}

// Mailer delivers {to, subject, text} asynchronously. Delivery failures are
// logged, never surfaced; nothing awaits delivery confirmation.
type Mailer interface {
	Send(to, subject, body string) error
}

// Notifier is the single fan-out point for lifecycle side effects. Entity
// managers never notify; only the workflow orchestrator calls this.
type Notifier interface {
	Notify(ctx context.Context, userUUID string, caseUUID, sessionUUID *string, details string)
	NotifyEmail(to, subject, body string)
}
