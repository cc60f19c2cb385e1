package domain

import "context"

// CaseRepository owns the case state machine. No other component writes
// Case.Status.
type CaseRepository interface {
	// CreateWithSession creates a case for the session's student, assigns
	// the CS_### code, links the session as ordinal 1 and stamps the
	// session's sequence code.
	CreateWithSession(ctx context.Context, session *Session) (*Case, error)
	GetByUUID(ctx context.Context, uuid string) (*Case, error)

	// Accept: pending → progress (mirrors first session acceptance).
	Accept(ctx context.Context, uuid string) (*Case, error)
	// Close: → completed with the closing reason recorded.
	Close(ctx context.Context, uuid, concernRaised, reasonForClosing string) (*Case, error)
	// Refer: → referred, terminal; ownership moves to a fresh case.
	Refer(ctx context.Context, uuid, concernRaised string) (*Case, error)
	// Referer appends a referred-to counsellor without touching the case
	// status: peer feedback, ownership stays put.
	Referer(ctx context.Context, uuid string, entry *ReferralEntry, concernRaised string) (*Case, error)
	// Cancel: → cancelled.
	Cancel(ctx context.Context, uuid string) (*Case, error)

	// AppendSession links one more session to the case (list only grows)
	// and assigns its "{caseCode}/SC_NN" sequence code if missing.
	AppendSession(ctx context.Context, uuid, sessionUUID, concernRaised string) (*Case, error)

	FindByStudent(ctx context.Context, studentUUID string, page, limit int) (*[]Case, error)
	FindByCounsellor(ctx context.Context, counsellorUUID string, page, limit int) (*[]Case, error)
	// CountByCounsellor counts cases reachable through an active
	// session-to-counsellor link only.
	CountByCounsellor(ctx context.Context, counsellorUUID string) (int64, error)
	// CountByStudent counts by case ownership; a case with zero sessions
	// still belongs to its creating student.
	CountByStudent(ctx context.Context, studentUUID string) (int64, error)

	Delete(ctx context.Context, uuid string) error
}
