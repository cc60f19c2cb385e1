package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

// waitForEmails blocks until n emails were handed to the mailer. Dispatch
// happens on goroutines, so counts are polled rather than assumed.
func (m *fakeMailer) waitForEmails(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		m.mu.Lock()
		sent := append([]string(nil), m.sent...)
		m.mu.Unlock()
		if len(sent) >= n {
			return sent
		}
		if time.Now().After(deadline) {
			t.Fatalf("emails sent = %d, want %d (recipients: %v)", len(sent), n, sent)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type fixture struct {
	db       *gorm.DB
	flow     domain.WorkflowUseCase
	mailer   *fakeMailer
	sessions domain.SessionRepository
	cases    domain.CaseRepository
	users    domain.UserRepository
	notes    domain.NotificationRepository

	student    *domain.User
	counsellor *domain.User
	peer       *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Case{},
		&domain.ReferralEntry{},
		&domain.Notification{},
		&domain.AvailabilitySlot{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	f := &fixture{
		db:       db,
		mailer:   &fakeMailer{},
		sessions: repository.NewSessionRepository(db),
		cases:    repository.NewCaseRepository(db),
		users:    repository.NewUserRepository(db),
		notes:    repository.NewNotificationRepository(db),
	}
	notifier := NewNotifier(f.notes, f.mailer)
	f.flow = NewWorkflowService(f.sessions, f.cases, f.users, notifier)

	f.student = f.seedUser(t, "amara", domain.RoleStudent)
	f.counsellor = f.seedUser(t, "jacob", domain.RoleCounsellor)
	f.peer = f.seedUser(t, "farida", domain.RoleCounsellor)
	return f
}

func (f *fixture) seedUser(t *testing.T, name, role string) *domain.User {
	t.Helper()
	user := domain.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return &user
}

func (f *fixture) request(t *testing.T, date string, start, end string) (*domain.Session, *domain.Case) {
	t.Helper()
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		t.Fatalf("bad date %s: %v", date, err)
	}
	session, newCase, err := f.flow.RequestSession(context.Background(), domain.RequestSessionInput{
		StudentUUID:    f.student.UUID,
		CounsellorUUID: f.counsellor.UUID,
		Date:           day,
		Interval:       domain.Interval{Start: start, End: end},
		Type:           "career",
		Description:    "course selection worries",
	})
	if err != nil {
		t.Fatalf("request session failed: %v", err)
	}
	return session, newCase
}

func (f *fixture) unreadCount(t *testing.T, userUUID string) int {
	t.Helper()
	notes, err := f.notes.FindUnreadByUser(context.Background(), userUUID)
	if err != nil {
		t.Fatalf("fetch notifications failed: %v", err)
	}
	return len(*notes)
}

func TestRequestSessionRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")

	if session.Status != domain.StatusPending {
		t.Errorf("session status = %q, want pending", session.Status)
	}
	if newCase.Status != domain.StatusPending {
		t.Errorf("case status = %q, want pending", newCase.Status)
	}

	reloaded, err := f.sessions.GetByUUID(ctx, session.UUID)
	if err != nil {
		t.Fatalf("round-trip fetch failed: %v", err)
	}
	if reloaded.CaseUUID == nil || *reloaded.CaseUUID != newCase.UUID {
		t.Errorf("session not linked to case")
	}
	if reloaded.SequenceCode == nil {
		t.Errorf("session sequence code missing")
	}

	// One notification per party.
	if got := f.unreadCount(t, f.student.UUID); got != 1 {
		t.Errorf("student notifications = %d, want 1", got)
	}
	if got := f.unreadCount(t, f.counsellor.UUID); got != 1 {
		t.Errorf("counsellor notifications = %d, want 1", got)
	}

	// And one email each.
	sent := f.mailer.waitForEmails(t, 2)
	byRecipient := map[string]int{}
	for _, to := range sent {
		byRecipient[to]++
	}
	if byRecipient[f.student.Email] != 1 || byRecipient[f.counsellor.Email] != 1 {
		t.Errorf("emails = %v, want one per party", sent)
	}
}

func TestAcceptSessionExactlyOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")

	platform := "meet"
	accepted, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, &platform, nil)
	if err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if accepted.Status != domain.StatusProgress {
		t.Errorf("accepted session status = %q, want progress", accepted.Status)
	}

	acceptedCase, err := f.cases.GetByUUID(ctx, newCase.UUID)
	if err != nil {
		t.Fatalf("case fetch failed: %v", err)
	}
	if acceptedCase.Status != domain.StatusProgress {
		t.Errorf("case status = %q, want progress", acceptedCase.Status)
	}

	// Acceptance emails both parties on top of the two request emails.
	sent := f.mailer.waitForEmails(t, 4)
	byRecipient := map[string]int{}
	for _, to := range sent {
		byRecipient[to]++
	}
	if byRecipient[f.student.Email] != 2 || byRecipient[f.counsellor.Email] != 2 {
		t.Errorf("emails = %v, want two per party after request+accept", sent)
	}

	// The second accept loses the conditional update.
	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); !domain.IsInvalidTransition(err) {
		t.Fatalf("second accept = %v, want TransitionError", err)
	}
}

func TestAcceptSessionWrongCounsellor(t *testing.T) {
	f := newFixture(t)

	session, _ := f.request(t, "2024-05-01", "10:00", "10:30")

	_, err := f.flow.AcceptSession(context.Background(), f.peer.UUID, session.UUID, nil, nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("accept by a different counsellor = %v, want ErrForbidden", err)
	}
}

func TestStudentRescheduleOnProgressRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.request(t, "2024-05-01", "10:00", "10:30")
	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	newDate, _ := time.Parse(domain.DateLayout, "2024-05-02")
	_, err := f.flow.RescheduleSession(ctx, domain.ActorStudent, f.student.UUID, session.UUID,
		newDate, domain.Interval{Start: "11:00", End: "11:30"}, "clash")
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("student reschedule on progress = %v, want TransitionError", err)
	}

	unchanged, err := f.sessions.GetByUUID(ctx, session.UUID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if unchanged.StartTime != "10:00" || unchanged.Status != domain.StatusProgress {
		t.Errorf("session modified by rejected reschedule: %s %s", unchanged.Status, unchanged.StartTime)
	}
}

func TestCancelSessionNotifiesOtherParty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")
	counsellorBefore := f.unreadCount(t, f.counsellor.UUID)
	studentBefore := f.unreadCount(t, f.student.UUID)

	cancelled, err := f.flow.CancelSession(ctx, domain.ActorStudent, f.student.UUID, session.UUID, "not needed anymore")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != domain.StatusCancelled {
		t.Errorf("session status = %q, want cancelled", cancelled.Status)
	}

	cancelledCase, err := f.cases.GetByUUID(ctx, newCase.UUID)
	if err != nil {
		t.Fatalf("case fetch failed: %v", err)
	}
	if cancelledCase.Status != domain.StatusCancelled {
		t.Errorf("case status = %q, want cancelled", cancelledCase.Status)
	}

	if got := f.unreadCount(t, f.counsellor.UUID); got != counsellorBefore+1 {
		t.Errorf("counsellor notifications = %d, want %d", got, counsellorBefore+1)
	}
	if got := f.unreadCount(t, f.student.UUID); got != studentBefore {
		t.Errorf("acting student notified about own cancel")
	}
}

func TestAddEntryCloseBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")
	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	result, err := f.flow.AddEntry(ctx, f.counsellor.UUID, newCase.UUID, domain.AddEntryInput{
		SessionUUID:      session.UUID,
		InteractionNotes: "worked through the concern",
		CaseDetails:      "career uncertainty",
		Close:            true,
		ReasonForClosing: "resolved",
		ConcernRaised:    "2024-05-01",
	})
	if err != nil {
		t.Fatalf("add entry failed: %v", err)
	}

	if result.Branch != domain.BranchClose {
		t.Errorf("branch = %q, want close", result.Branch)
	}
	if result.Session.Status != domain.StatusCompleted {
		t.Errorf("session status = %q, want completed", result.Session.Status)
	}
	if result.Case.Status != domain.StatusCompleted {
		t.Errorf("case status = %q, want completed", result.Case.Status)
	}
	if result.Case.ReasonForClosing == nil || *result.Case.ReasonForClosing != "resolved" {
		t.Errorf("reason for closing = %v, want resolved", result.Case.ReasonForClosing)
	}
	if result.NewSession != nil {
		t.Errorf("close branch created a session")
	}
}

func TestAddEntryReferWithSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")
	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	result, err := f.flow.AddEntry(ctx, f.counsellor.UUID, newCase.UUID, domain.AddEntryInput{
		SessionUUID:      session.UUID,
		InteractionNotes: "beyond my specialisation",
		CaseDetails:      "needs behavioural support",
		Refer:            &f.peer.UUID,
		WithSession:      true,
		ConcernRaised:    "2024-05-01",
	})
	if err != nil {
		t.Fatalf("add entry failed: %v", err)
	}

	if result.Branch != domain.BranchRefer {
		t.Errorf("branch = %q, want refer", result.Branch)
	}
	if result.Case.Status != domain.StatusReferred {
		t.Errorf("old case status = %q, want referred", result.Case.Status)
	}
	if result.NewCase == nil || result.NewSession == nil {
		t.Fatal("refer branch must create a new case and session")
	}
	if result.NewCase.UUID == newCase.UUID {
		t.Errorf("new case is the old case")
	}
	if result.NewCase.StudentUUID != f.student.UUID {
		t.Errorf("new case owned by %s, want same student", result.NewCase.StudentUUID)
	}
	if len(result.NewCase.Sessions) != 1 {
		t.Errorf("new case holds %d sessions, want exactly the new one", len(result.NewCase.Sessions))
	}
	if result.NewSession.CounsellorUUID != f.peer.UUID {
		t.Errorf("new session assigned to %s, want referred-to counsellor", result.NewSession.CounsellorUUID)
	}
	if result.NewSession.Status != domain.StatusPending {
		t.Errorf("new session status = %q, want pending", result.NewSession.Status)
	}
	// Schedule, type and description carry over.
	if result.NewSession.StartTime != "10:00" || result.NewSession.Type != "career" {
		t.Errorf("new session did not carry the old schedule/type")
	}
}

func TestAddEntryRefererKeepsOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")
	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	before, err := f.cases.GetByUUID(ctx, newCase.UUID)
	if err != nil {
		t.Fatalf("case fetch failed: %v", err)
	}
	peerBefore := f.unreadCount(t, f.peer.UUID)

	result, err := f.flow.AddEntry(ctx, f.counsellor.UUID, newCase.UUID, domain.AddEntryInput{
		SessionUUID:      session.UUID,
		InteractionNotes: "could use a second opinion",
		Refer:            &f.peer.UUID,
		Remarks:          "please review the notes",
	})
	if err != nil {
		t.Fatalf("add entry failed: %v", err)
	}

	if result.Branch != domain.BranchReferer {
		t.Errorf("branch = %q, want referer", result.Branch)
	}
	if result.Case.Status != before.Status {
		t.Errorf("case status moved from %q to %q on peer feedback", before.Status, result.Case.Status)
	}
	if len(result.Case.Referrals) != len(before.Referrals)+1 {
		t.Errorf("referral list grew by %d, want exactly 1", len(result.Case.Referrals)-len(before.Referrals))
	}
	if result.NewCase != nil || result.NewSession != nil {
		t.Errorf("peer feedback created new entities")
	}
	if got := f.unreadCount(t, f.peer.UUID); got != peerBefore+1 {
		t.Errorf("peer notifications = %d, want %d", got, peerBefore+1)
	}
}

func TestAddEntryContinuationBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")
	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	followUpDate, _ := time.Parse(domain.DateLayout, "2024-05-08")
	result, err := f.flow.AddEntry(ctx, f.counsellor.UUID, newCase.UUID, domain.AddEntryInput{
		SessionUUID:      session.UUID,
		InteractionNotes: "good progress, one more session",
		Date:             followUpDate,
		Interval:         domain.Interval{Start: "10:00", End: "10:30"},
	})
	if err != nil {
		t.Fatalf("add entry failed: %v", err)
	}

	if result.Branch != domain.BranchContinuation {
		t.Errorf("branch = %q, want continuation", result.Branch)
	}
	if result.Session.Status != domain.StatusCompleted {
		t.Errorf("closed session status = %q, want completed", result.Session.Status)
	}
	if result.NewSession == nil {
		t.Fatal("continuation must create a follow-up session")
	}
	// Counsellor follow-ups are self-approving.
	if result.NewSession.Status != domain.StatusProgress {
		t.Errorf("follow-up status = %q, want progress", result.NewSession.Status)
	}
	if result.NewSession.CounsellorUUID != f.counsellor.UUID {
		t.Errorf("follow-up moved to a different counsellor")
	}
	if result.Case.SessionCount != 2 {
		t.Errorf("case session count = %d, want 2", result.Case.SessionCount)
	}
	if result.NewSession.CaseOrdinal != 2 {
		t.Errorf("follow-up ordinal = %d, want 2", result.NewSession.CaseOrdinal)
	}
	if result.NewSession.SequenceCode == nil || *result.NewSession.SequenceCode != "CS_001/SC_02" {
		t.Errorf("follow-up code = %v, want CS_001/SC_02", result.NewSession.SequenceCode)
	}
}

func TestAddEntryContinuationNeedsSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, newCase := f.request(t, "2024-05-01", "10:00", "10:30")
	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	// No close, no refer, no schedule: rejected before anything is written.
	_, err := f.flow.AddEntry(ctx, f.counsellor.UUID, newCase.UUID, domain.AddEntryInput{
		SessionUUID:      session.UUID,
		InteractionNotes: "notes only",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("schedule-less continuation = %v, want ErrInvalidInput", err)
	}

	untouched, err := f.sessions.GetByUUID(ctx, session.UUID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if untouched.Status != domain.StatusProgress {
		t.Errorf("session status = %q, want progress (not closed)", untouched.Status)
	}
}

func TestAddEntryRequiresMatchingCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, _ := f.request(t, "2024-05-01", "10:00", "10:30")
	_, otherCase := f.request(t, "2024-06-01", "10:00", "10:30")

	if _, err := f.flow.AcceptSession(ctx, f.counsellor.UUID, session.UUID, nil, nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	_, err := f.flow.AddEntry(ctx, f.counsellor.UUID, otherCase.UUID, domain.AddEntryInput{
		SessionUUID:      session.UUID,
		InteractionNotes: "notes",
		Close:            true,
		ReasonForClosing: "resolved",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("add entry against a foreign case = %v, want ErrInvalidInput", err)
	}
}
