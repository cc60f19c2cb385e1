package domain

import (
	"context"
	"time"
)

// CalendarEntry is the big-calendar feed shape.
type CalendarEntry struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type CounsellorUseCase interface {
	GetMyProfile(ctx context.Context, userUUID string) (*User, error)
	UpdateMyProfile(ctx context.Context, userUUID string, user User) error

	AddTimes(ctx context.Context, counsellorUUID, dayOfWeek string, intervals []Interval) error
	GetTimes(ctx context.Context, counsellorUUID string) (map[string][]Interval, error)
	RemoveTime(ctx context.Context, counsellorUUID, dayOfWeek string, interval Interval) error

	GetMySessions(ctx context.Context, counsellorUUID, status string, page, limit int) (*[]Session, int64, error)
	GetMyCases(ctx context.Context, counsellorUUID string, page, limit int) (*[]Case, int64, error)
	GetCaseSessions(ctx context.Context, caseUUID string) (*[]Session, error)
	GetSession(ctx context.Context, sessionUUID string) (*Session, error)
	GetBigCalendar(ctx context.Context, counsellorUUID string) ([]CalendarEntry, error)

	GetNotifications(ctx context.Context, userUUID string) (*[]Notification, error)
	MarkNotificationRead(ctx context.Context, uuid string) (*Notification, error)
}

// CounsellorRepository covers the counsellor reads that fall outside the
// session/case entity managers.
type CounsellorRepository interface {
	GetBigCalendar(ctx context.Context, counsellorUUID string) ([]CalendarEntry, error)
}
