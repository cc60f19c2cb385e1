package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/utils"

	"github.com/rs/zerolog/log"
)

type workflowService struct {
	sessionRepo domain.SessionRepository
	caseRepo    domain.CaseRepository
	userRepo    domain.UserRepository
	notifier    domain.Notifier
}

// NewWorkflowService wires the entity managers and the notifier into the
// composite business operations. State writes always commit before any
// notification is dispatched.
func NewWorkflowService(
	sessionRepo domain.SessionRepository,
	caseRepo domain.CaseRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
) domain.WorkflowUseCase {
	return &workflowService{
		sessionRepo: sessionRepo,
		caseRepo:    caseRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// atStep tags a follow-up failure with the workflow step already committed,
// so the caller can tell "session closed, but case update failed" apart
// from a clean rejection. Partial states are left as reached and logged.
func atStep(err error, step string) error {
	log.Error().Err(err).Str("step", step).Msg("workflow left in partial state")
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return te.AtStep(step)
	}
	return fmt.Errorf("%s: %w", step, err)
}

func sessionCode(s *domain.Session) string {
	if s.SequenceCode != nil {
		return *s.SequenceCode
	}
	return s.UUID
}

func (w *workflowService) RequestSession(ctx context.Context, in domain.RequestSessionInput) (*domain.Session, *domain.Case, error) {
	session := &domain.Session{
		StudentUUID:    in.StudentUUID,
		CounsellorUUID: in.CounsellorUUID,
		SessionDate:    in.Date,
		StartTime:      in.Interval.Start,
		EndTime:        in.Interval.End,
		Type:           in.Type,
		Description:    in.Description,
	}

	// 1️⃣ Create the pending session (overlap invariant enforced inside)
	if err := w.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	// 2️⃣ Open the case around it; this stamps both sequence codes
	newCase, err := w.caseRepo.CreateWithSession(ctx, session)
	if err != nil {
		return nil, nil, atStep(err, "session created, but case creation failed")
	}

	// 3️⃣ Re-read so the codes and both parties are loaded for the fan-out
	session, err = w.sessionRepo.GetByUUID(ctx, session.UUID)
	if err != nil {
		return nil, newCase, atStep(err, "session and case created, but reload failed")
	}

	// ✅ Fan-out: both parties, in-app + email
	schedule := utils.FormatSessionSchedule(session.SessionDate, session.StartTime, session.EndTime)
	code := sessionCode(session)

	w.notifier.Notify(ctx, session.CounsellorUUID, &newCase.UUID, &session.UUID,
		fmt.Sprintf("New session request %s from %s on %s, awaiting your approval", code, session.Student.Name, schedule))
	w.notifier.Notify(ctx, session.StudentUUID, &newCase.UUID, &session.UUID,
		fmt.Sprintf("Your session %s with %s on %s is awaiting approval", code, session.Counsellor.Name, schedule))

	w.notifier.NotifyEmail(session.Counsellor.Email, "New counselling session request",
		fmt.Sprintf("%s has requested session %s on %s. Please accept or reschedule it.", session.Student.Name, code, schedule))
	w.notifier.NotifyEmail(session.Student.Email, "Counselling session requested",
		fmt.Sprintf("Your session %s with %s on %s has been submitted and is awaiting approval.", code, session.Counsellor.Name, schedule))

	return session, newCase, nil
}

func (w *workflowService) AcceptSession(ctx context.Context, counsellorUUID, sessionUUID string, platform, link *string) (*domain.Session, error) {
	current, err := w.sessionRepo.GetByUUID(ctx, sessionUUID)
	if err != nil {
		return nil, err
	}
	if current.CounsellorUUID != counsellorUUID {
		return nil, fmt.Errorf("%w: session is not assigned to this counsellor", domain.ErrForbidden)
	}

	// The conditional update below is the whole concurrency control: of two
	// concurrent accepts exactly one wins, the other gets a TransitionError.
	session, err := w.sessionRepo.Accept(ctx, sessionUUID, platform, link)
	if err != nil {
		return nil, err
	}

	if session.CaseUUID != nil {
		if _, err := w.caseRepo.Accept(ctx, *session.CaseUUID); err != nil {
			return session, atStep(err, "session accepted, but case update failed")
		}
	}

	schedule := utils.FormatSessionSchedule(session.SessionDate, session.StartTime, session.EndTime)
	code := sessionCode(session)

	w.notifier.Notify(ctx, session.StudentUUID, session.CaseUUID, &session.UUID,
		fmt.Sprintf("Session %s with %s has been accepted for %s", code, session.Counsellor.Name, schedule))
	w.notifier.Notify(ctx, session.CounsellorUUID, session.CaseUUID, &session.UUID,
		fmt.Sprintf("You accepted session %s with %s for %s", code, session.Student.Name, schedule))

	w.notifier.NotifyEmail(session.Student.Email, "Counselling session accepted",
		fmt.Sprintf("Your session %s with %s has been accepted for %s.", code, session.Counsellor.Name, schedule))
	w.notifier.NotifyEmail(session.Counsellor.Email, "Counselling session confirmed",
		fmt.Sprintf("You accepted session %s with %s for %s.", code, session.Student.Name, schedule))

	return session, nil
}

func (w *workflowService) RescheduleSession(ctx context.Context, actor, actorUUID, sessionUUID string, newDate time.Time, newInterval domain.Interval, remark string) (*domain.Session, error) {
	current, err := w.sessionRepo.GetByUUID(ctx, sessionUUID)
	if err != nil {
		return nil, err
	}
	if err := w.authorizeActor(current, actor, actorUUID); err != nil {
		return nil, err
	}
	oldSchedule := utils.FormatSessionSchedule(current.SessionDate, current.StartTime, current.EndTime)

	session, err := w.sessionRepo.Reschedule(ctx, sessionUUID, actor, newDate, newInterval, remark)
	if err != nil {
		return nil, err
	}

	newSchedule := utils.FormatSessionSchedule(session.SessionDate, session.StartTime, session.EndTime)
	code := sessionCode(session)
	actorName := session.Student.Name
	if actor == domain.ActorCounsellor {
		actorName = session.Counsellor.Name
	}

	details := fmt.Sprintf("Session %s has been rescheduled by %s from %s to %s", code, actorName, oldSchedule, newSchedule)
	w.notifier.Notify(ctx, session.StudentUUID, session.CaseUUID, &session.UUID, details)
	w.notifier.Notify(ctx, session.CounsellorUUID, session.CaseUUID, &session.UUID, details)

	w.notifier.NotifyEmail(session.Student.Email, "Counselling session rescheduled",
		fmt.Sprintf("%s. Remark: %s", details, remark))
	w.notifier.NotifyEmail(session.Counsellor.Email, "Counselling session rescheduled",
		fmt.Sprintf("%s. Remark: %s", details, remark))

	return session, nil
}

func (w *workflowService) CancelSession(ctx context.Context, actor, actorUUID, sessionUUID, remark string) (*domain.Session, error) {
	current, err := w.sessionRepo.GetByUUID(ctx, sessionUUID)
	if err != nil {
		return nil, err
	}
	if err := w.authorizeActor(current, actor, actorUUID); err != nil {
		return nil, err
	}

	session, err := w.sessionRepo.Cancel(ctx, sessionUUID, actor, remark)
	if err != nil {
		return nil, err
	}

	if session.CaseUUID != nil {
		if _, err := w.caseRepo.Cancel(ctx, *session.CaseUUID); err != nil {
			return session, atStep(err, "session cancelled, but case update failed")
		}
	}

	schedule := utils.FormatSessionSchedule(session.SessionDate, session.StartTime, session.EndTime)
	code := sessionCode(session)

	// notify the other party only
	if actor == domain.ActorStudent {
		w.notifier.Notify(ctx, session.CounsellorUUID, session.CaseUUID, &session.UUID,
			fmt.Sprintf("Session %s on %s was cancelled by %s: %s", code, schedule, session.Student.Name, remark))
		w.notifier.NotifyEmail(session.Counsellor.Email, "Counselling session cancelled",
			fmt.Sprintf("Session %s on %s was cancelled by %s. Reason: %s", code, schedule, session.Student.Name, remark))
	} else {
		w.notifier.Notify(ctx, session.StudentUUID, session.CaseUUID, &session.UUID,
			fmt.Sprintf("Session %s on %s was cancelled by %s: %s", code, schedule, session.Counsellor.Name, remark))
		w.notifier.NotifyEmail(session.Student.Email, "Counselling session cancelled",
			fmt.Sprintf("Session %s on %s was cancelled by %s. Reason: %s", code, schedule, session.Counsellor.Name, remark))
	}

	return session, nil
}

func (w *workflowService) AddEntry(ctx context.Context, counsellorUUID, caseUUID string, in domain.AddEntryInput) (*domain.AddEntryResult, error) {
	current, err := w.sessionRepo.GetByUUID(ctx, in.SessionUUID)
	if err != nil {
		return nil, err
	}
	if current.CounsellorUUID != counsellorUUID {
		return nil, fmt.Errorf("%w: session is not assigned to this counsellor", domain.ErrForbidden)
	}
	if current.CaseUUID == nil || *current.CaseUUID != caseUUID {
		return nil, fmt.Errorf("%w: session does not belong to this case", domain.ErrInvalidInput)
	}
	// A continuation must carry its follow-up schedule; check before the
	// session is closed so a bad payload leaves no partial state.
	if !in.Close && in.Refer == nil {
		if in.Date.IsZero() || in.Interval.Start == "" || in.Interval.End == "" {
			return nil, fmt.Errorf("%w: follow-up session requires a date and time interval", domain.ErrInvalidInput)
		}
	}

	// 1️⃣ Always: close the current session, whatever branch follows
	closed, err := w.sessionRepo.Close(ctx, in.SessionUUID, in.InteractionNotes, in.CaseDetails)
	if err != nil {
		return nil, err
	}

	switch {
	case in.Close:
		return w.closeCase(ctx, caseUUID, closed, in)
	case in.Refer != nil && in.WithSession:
		return w.referCase(ctx, caseUUID, closed, in)
	case in.Refer != nil:
		return w.refererCase(ctx, counsellorUUID, caseUUID, closed, in)
	default:
		return w.continueCase(ctx, caseUUID, closed, in)
	}
}

// closeCase: the case ends here, no new session.
func (w *workflowService) closeCase(ctx context.Context, caseUUID string, closed *domain.Session, in domain.AddEntryInput) (*domain.AddEntryResult, error) {
	updated, err := w.caseRepo.Close(ctx, caseUUID, in.ConcernRaised, in.ReasonForClosing)
	if err != nil {
		return nil, atStep(err, "session closed, but case close failed")
	}

	w.notifier.Notify(ctx, closed.StudentUUID, &updated.UUID, &closed.UUID,
		fmt.Sprintf("Case %s has been closed by %s: %s", updated.SequenceCode, closed.Counsellor.Name, in.ReasonForClosing))
	w.notifier.NotifyEmail(closed.Student.Email, "Counselling case closed",
		fmt.Sprintf("Your case %s has been closed by %s. Reason: %s", updated.SequenceCode, closed.Counsellor.Name, in.ReasonForClosing))

	return &domain.AddEntryResult{Branch: domain.BranchClose, Case: updated, Session: closed}, nil
}

// referCase: hand the whole case to another counsellor. The old case is
// marked referred (terminal); the new counsellor gets a fresh pending
// session under a brand-new case for the same student.
func (w *workflowService) referCase(ctx context.Context, caseUUID string, closed *domain.Session, in domain.AddEntryInput) (*domain.AddEntryResult, error) {
	referred, err := w.caseRepo.Refer(ctx, caseUUID, in.ConcernRaised)
	if err != nil {
		return nil, atStep(err, "session closed, but case referral failed")
	}

	// carry schedule, type and description over from the closed session
	newSession := &domain.Session{
		StudentUUID:    closed.StudentUUID,
		CounsellorUUID: *in.Refer,
		SessionDate:    closed.SessionDate,
		StartTime:      closed.StartTime,
		EndTime:        closed.EndTime,
		Type:           closed.Type,
		Description:    closed.Description,
	}
	if err := w.sessionRepo.Create(ctx, newSession); err != nil {
		return nil, atStep(err, "case referred, but new session creation failed")
	}

	newCase, err := w.caseRepo.CreateWithSession(ctx, newSession)
	if err != nil {
		return nil, atStep(err, "case referred and session created, but new case creation failed")
	}

	newSession, err = w.sessionRepo.GetByUUID(ctx, newSession.UUID)
	if err != nil {
		return nil, atStep(err, "referral committed, but reload failed")
	}

	schedule := utils.FormatSessionSchedule(newSession.SessionDate, newSession.StartTime, newSession.EndTime)
	code := sessionCode(newSession)

	w.notifier.Notify(ctx, newSession.CounsellorUUID, &newCase.UUID, &newSession.UUID,
		fmt.Sprintf("Referred session %s from %s on %s, pending your approval", code, newSession.Student.Name, schedule))
	w.notifier.Notify(ctx, newSession.StudentUUID, &newCase.UUID, &newSession.UUID,
		fmt.Sprintf("Your case was referred to %s; session %s on %s is pending approval", newSession.Counsellor.Name, code, schedule))

	w.notifier.NotifyEmail(newSession.Counsellor.Email, "Counselling case referred to you",
		fmt.Sprintf("%s's case was referred to you. Session %s on %s is pending your approval.", newSession.Student.Name, code, schedule))
	w.notifier.NotifyEmail(newSession.Student.Email, "Counselling case referred",
		fmt.Sprintf("Your case was referred to %s. Session %s on %s is pending approval.", newSession.Counsellor.Name, code, schedule))

	return &domain.AddEntryResult{
		Branch:     domain.BranchRefer,
		Case:       referred,
		Session:    closed,
		NewCase:    newCase,
		NewSession: newSession,
	}, nil
}

// refererCase: ask a peer for feedback. Ownership and case status stay put;
// the referral list grows by one.
func (w *workflowService) refererCase(ctx context.Context, counsellorUUID, caseUUID string, closed *domain.Session, in domain.AddEntryInput) (*domain.AddEntryResult, error) {
	peer, err := w.userRepo.GetUserByUUID(ctx, *in.Refer)
	if err != nil {
		return nil, atStep(err, "session closed, but referred-to counsellor lookup failed")
	}

	entry := &domain.ReferralEntry{
		CaseUUID:       caseUUID,
		CounsellorUUID: peer.UUID,
		AuthorUUID:     counsellorUUID,
		Remark:         in.Remarks,
	}
	updated, err := w.caseRepo.Referer(ctx, caseUUID, entry, in.ConcernRaised)
	if err != nil {
		return nil, atStep(err, "session closed, but referral entry failed")
	}

	if err := w.sessionRepo.AddDetails(ctx, closed.UUID, in.InteractionNotes); err != nil {
		return nil, atStep(err, "referral recorded, but session details update failed")
	}

	w.notifier.Notify(ctx, peer.UUID, &updated.UUID, &closed.UUID,
		fmt.Sprintf("%s requested your feedback on case %s", closed.Counsellor.Name, updated.SequenceCode))
	w.notifier.NotifyEmail(peer.Email, "Counselling feedback requested",
		fmt.Sprintf("%s has requested your feedback on case %s. Remark: %s", closed.Counsellor.Name, updated.SequenceCode, in.Remarks))

	return &domain.AddEntryResult{Branch: domain.BranchReferer, Case: updated, Session: closed}, nil
}

// continueCase: schedule a follow-up session under the same counsellor.
// Counsellor-created follow-ups are self-approving, so status starts at
// progress, not pending.
func (w *workflowService) continueCase(ctx context.Context, caseUUID string, closed *domain.Session, in domain.AddEntryInput) (*domain.AddEntryResult, error) {
	newSession := &domain.Session{
		StudentUUID:    closed.StudentUUID,
		CounsellorUUID: closed.CounsellorUUID,
		SessionDate:    in.Date,
		StartTime:      in.Interval.Start,
		EndTime:        in.Interval.End,
		Type:           closed.Type,
		Description:    closed.Description,
		Status:         domain.StatusProgress,
	}
	if err := w.sessionRepo.Create(ctx, newSession); err != nil {
		return nil, atStep(err, "session closed, but follow-up session creation failed")
	}

	updated, err := w.caseRepo.AppendSession(ctx, caseUUID, newSession.UUID, in.ConcernRaised)
	if err != nil {
		return nil, atStep(err, "follow-up session created, but case link failed")
	}

	newSession, err = w.sessionRepo.GetByUUID(ctx, newSession.UUID)
	if err != nil {
		return nil, atStep(err, "follow-up committed, but reload failed")
	}

	schedule := utils.FormatSessionSchedule(newSession.SessionDate, newSession.StartTime, newSession.EndTime)
	code := sessionCode(newSession)

	w.notifier.Notify(ctx, newSession.StudentUUID, &updated.UUID, &newSession.UUID,
		fmt.Sprintf("Follow-up session %s with %s scheduled for %s", code, newSession.Counsellor.Name, schedule))
	w.notifier.NotifyEmail(newSession.Student.Email, "Follow-up counselling session scheduled",
		fmt.Sprintf("%s has scheduled follow-up session %s for %s.", newSession.Counsellor.Name, code, schedule))

	return &domain.AddEntryResult{
		Branch:     domain.BranchContinuation,
		Case:       updated,
		Session:    closed,
		NewSession: newSession,
	}, nil
}

// authorizeActor checks that the acting party actually belongs to the
// session it is trying to move.
func (w *workflowService) authorizeActor(s *domain.Session, actor, actorUUID string) error {
	switch actor {
	case domain.ActorStudent:
		if s.StudentUUID != actorUUID {
			return fmt.Errorf("%w: session does not belong to this student", domain.ErrForbidden)
		}
	case domain.ActorCounsellor:
		if s.CounsellorUUID != actorUUID {
			return fmt.Errorf("%w: session is not assigned to this counsellor", domain.ErrForbidden)
		}
	default:
		return fmt.Errorf("unknown actor %q", actor)
	}
	return nil
}
