package domain

import (
	"context"
	"time"
)

type RequestSessionInput struct {
	StudentUUID    string
	CounsellorUUID string
	Date           time.Time
	Interval       Interval
	Type           string
	Description    string
}

// AddEntryInput is the payload of the counsellor's add-entry call. The
// referenced session is always closed first; exactly one of the branches
// below then runs: close the case, refer it away (with a fresh session for
// the new counsellor), ask a peer for feedback, or continue with a
// follow-up session.
type AddEntryInput struct {
	SessionUUID      string
	InteractionNotes string
	CaseDetails      string

	Close            bool
	ReasonForClosing string

	Refer       *string // referred-to counsellor uuid
	WithSession bool

	ConcernRaised string // YYYY-MM-DD
	Date          time.Time
	Interval      Interval
	Remarks       string
}

const (
	BranchClose        = "close"
	BranchRefer        = "refer"
	BranchReferer      = "referer"
	BranchContinuation = "continuation"
)

type AddEntryResult struct {
	Branch     string   `json:"branch"`
	Case       *Case    `json:"case"`
	Session    *Session `json:"session"`               // the closed session
	NewCase    *Case    `json:"new_case,omitempty"`    // refer branch only
	NewSession *Session `json:"new_session,omitempty"` // refer & continuation
}

// WorkflowUseCase sequences the entity managers and the notifier into the
// business operations callers invoke. State writes are durable before any
// notification dispatch is attempted.
type WorkflowUseCase interface {
	RequestSession(ctx context.Context, in RequestSessionInput) (*Session, *Case, error)
	AcceptSession(ctx context.Context, counsellorUUID, sessionUUID string, platform, link *string) (*Session, error)
	RescheduleSession(ctx context.Context, actor, actorUUID, sessionUUID string, newDate time.Time, newInterval Interval, remark string) (*Session, error)
	CancelSession(ctx context.Context, actor, actorUUID, sessionUUID, remark string) (*Session, error)
	AddEntry(ctx context.Context, counsellorUUID, caseUUID string, in AddEntryInput) (*AddEntryResult, error)
}
