package domain

import (
	"context"
	"time"
)

type StudentUseCase interface {
	GetMyProfile(ctx context.Context, userUUID string) (*User, error)
	UpdateMyProfile(ctx context.Context, userUUID string, user User) error

	GetAllCounsellors(ctx context.Context, counsellorType string) (*[]User, error)
	GetCounsellorDays(ctx context.Context, counsellorUUID string) ([]string, error)
	GetAvailableTimes(ctx context.Context, counsellorUUID, dayOfWeek string, date time.Time) ([]Interval, error)

	GetMySessions(ctx context.Context, studentUUID, status string, page, limit int) (*[]Session, int64, error)
	GetMyCases(ctx context.Context, studentUUID string, page, limit int) (*[]Case, int64, error)
	GetCaseSessions(ctx context.Context, caseUUID string) (*[]Session, error)
	GetSession(ctx context.Context, sessionUUID string) (*Session, error)

	GetNotifications(ctx context.Context, userUUID string) (*[]Notification, error)
	MarkNotificationRead(ctx context.Context, uuid string) (*Notification, error)
	MarkNotificationsRead(ctx context.Context, uuids []string) error
}
