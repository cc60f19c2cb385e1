package service

import (
	"context"

	"github.com/XyvinTech/councelling-backend/domain"

	"github.com/rs/zerolog/log"
)

type notifier struct {
	notificationRepo domain.NotificationRepository
	mailer           domain.Mailer
}

// NewNotifier is the single fan-out point for lifecycle notifications.
// Notification rows are written synchronously; a failed write is logged and
// swallowed so a notification hiccup never fails the workflow that caused
// it. Emails go out on their own goroutines.
func NewNotifier(notificationRepo domain.NotificationRepository, mailer domain.Mailer) domain.Notifier {
	return &notifier{notificationRepo: notificationRepo, mailer: mailer}
}

func (n *notifier) Notify(ctx context.Context, userUUID string, caseUUID, sessionUUID *string, details string) {
	notification := &domain.Notification{
		UserUUID:    userUUID,
		CaseUUID:    caseUUID,
		SessionUUID: sessionUUID,
		Details:     details,
	}
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		log.Error().Err(err).Str("user_uuid", userUUID).Msg("failed to create notification")
	}
}

func (n *notifier) NotifyEmail(to, subject, body string) {
	go func() {
		if err := n.mailer.Send(to, subject, body); err != nil {
			log.Error().Err(err).Str("to", to).Msg("failed to send email")
		}
	}()
}
