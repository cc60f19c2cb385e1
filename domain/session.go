package domain

import (
	"context"
	"time"
)

// SessionRepository owns the session state machine. Every status write goes
// through a conditional update guarded on the current status, so two
// concurrent callers racing on the same transition produce exactly one
// winner; the loser gets a *TransitionError.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByUUID(ctx context.Context, uuid string) (*Session, error)

	// Accept: pending → progress, optionally attaching platform/link.
	Accept(ctx context.Context, uuid string, platform, link *string) (*Session, error)
	// Reschedule: target status depends on actor (see lifecycle.go).
	Reschedule(ctx context.Context, uuid, actor string, newDate time.Time, newInterval Interval, remark string) (*Session, error)
	// Cancel: any cancellable status → cancelled, remark kept per actor.
	Cancel(ctx context.Context, uuid, actor, remark string) (*Session, error)
	// Close: progress → completed, recording the closing texts.
	Close(ctx context.Context, uuid, interactionNotes, caseDetails string) (*Session, error)
	// AddDetails appends interaction notes without any status change
	// (peer-feedback referrals).
	AddDetails(ctx context.Context, uuid, interactionNotes string) error

	FindByStudent(ctx context.Context, studentUUID, status string, page, limit int) (*[]Session, int64, error)
	FindByCounsellor(ctx context.Context, counsellorUUID, status string, page, limit int) (*[]Session, int64, error)
	FindByCase(ctx context.Context, caseUUID string) (*[]Session, error)
	CountByStudentAndCounsellor(ctx context.Context, studentUUID, counsellorUUID string) (int64, error)

	Delete(ctx context.Context, uuid string) error
}
