package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/XyvinTech/councelling-backend/domain"
)

func TestCreateWithSessionAssignsCodes(t *testing.T) {
	db := newTestDB(t)
	caseRepo := NewCaseRepository(db)
	sessionRepo := NewSessionRepository(db)
	ctx := context.Background()

	student := seedUser(t, db, "amara", domain.RoleStudent)
	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	session := seedSession(t, db, student, counsellor, testDate(t, "2024-05-01"), "10:00", "10:30")

	created, err := caseRepo.CreateWithSession(ctx, session)
	if err != nil {
		t.Fatalf("create with session failed: %v", err)
	}
	if created.SequenceCode != "CS_001" {
		t.Errorf("case code = %q, want CS_001", created.SequenceCode)
	}
	if created.Status != domain.StatusPending {
		t.Errorf("case status = %q, want pending", created.Status)
	}
	if created.SessionCount != 1 {
		t.Errorf("session count = %d, want 1", created.SessionCount)
	}
	if len(created.Sessions) != 1 {
		t.Fatalf("case holds %d sessions, want 1", len(created.Sessions))
	}

	linked, err := sessionRepo.GetByUUID(ctx, session.UUID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if linked.SequenceCode == nil || *linked.SequenceCode != "CS_001/SC_01" {
		t.Errorf("session code = %v, want CS_001/SC_01", linked.SequenceCode)
	}
	if linked.CaseOrdinal != 1 {
		t.Errorf("session ordinal = %d, want 1", linked.CaseOrdinal)
	}

	// Case numbering keeps counting across cases.
	other := seedSession(t, db, student, counsellor, testDate(t, "2024-05-02"), "10:00", "10:30")
	second, err := caseRepo.CreateWithSession(ctx, other)
	if err != nil {
		t.Fatalf("second case failed: %v", err)
	}
	if second.SequenceCode != "CS_002" {
		t.Errorf("second case code = %q, want CS_002", second.SequenceCode)
	}
}

func TestAppendSessionGrowsOrdinals(t *testing.T) {
	db := newTestDB(t)
	caseRepo := NewCaseRepository(db)
	sessionRepo := NewSessionRepository(db)
	ctx := context.Background()

	student := seedUser(t, db, "amara", domain.RoleStudent)
	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	first := seedSession(t, db, student, counsellor, testDate(t, "2024-05-01"), "10:00", "10:30")

	created, err := caseRepo.CreateWithSession(ctx, first)
	if err != nil {
		t.Fatalf("create with session failed: %v", err)
	}

	followUp := seedSession(t, db, student, counsellor, testDate(t, "2024-05-08"), "10:00", "10:30")
	updated, err := caseRepo.AppendSession(ctx, created.UUID, followUp.UUID, "2024-05-01")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if updated.SessionCount != 2 {
		t.Errorf("session count = %d, want 2", updated.SessionCount)
	}
	if len(updated.Sessions) != 2 {
		t.Fatalf("case holds %d sessions, want 2", len(updated.Sessions))
	}
	if updated.ConcernRaised == nil || *updated.ConcernRaised != "2024-05-01" {
		t.Errorf("concern raised = %v, want 2024-05-01", updated.ConcernRaised)
	}

	linked, err := sessionRepo.GetByUUID(ctx, followUp.UUID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if linked.SequenceCode == nil || *linked.SequenceCode != "CS_001/SC_02" {
		t.Errorf("follow-up code = %v, want CS_001/SC_02", linked.SequenceCode)
	}

	// A session that already carries a code keeps it.
	reused, err := sessionRepo.GetByUUID(ctx, first.UUID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reused.SequenceCode == nil || *reused.SequenceCode != "CS_001/SC_01" {
		t.Errorf("original code rewritten to %v", reused.SequenceCode)
	}
}

func TestReferIsTerminal(t *testing.T) {
	db := newTestDB(t)
	caseRepo := NewCaseRepository(db)
	ctx := context.Background()

	student := seedUser(t, db, "amara", domain.RoleStudent)
	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	session := seedSession(t, db, student, counsellor, testDate(t, "2024-05-01"), "10:00", "10:30")

	created, err := caseRepo.CreateWithSession(ctx, session)
	if err != nil {
		t.Fatalf("create with session failed: %v", err)
	}

	referred, err := caseRepo.Refer(ctx, created.UUID, "2024-05-01")
	if err != nil {
		t.Fatalf("refer failed: %v", err)
	}
	if referred.Status != domain.StatusReferred {
		t.Errorf("status = %q, want referred", referred.Status)
	}

	// No transition is defined out of referred.
	if _, err := caseRepo.Accept(ctx, created.UUID); !domain.IsInvalidTransition(err) {
		t.Errorf("accept after refer = %v, want TransitionError", err)
	}
	if _, err := caseRepo.Close(ctx, created.UUID, "", "late close"); !domain.IsInvalidTransition(err) {
		t.Errorf("close after refer = %v, want TransitionError", err)
	}
}

func TestRefererKeepsStatusAndGrowsList(t *testing.T) {
	db := newTestDB(t)
	caseRepo := NewCaseRepository(db)
	ctx := context.Background()

	student := seedUser(t, db, "amara", domain.RoleStudent)
	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	peer := seedUser(t, db, "farida", domain.RoleCounsellor)
	session := seedSession(t, db, student, counsellor, testDate(t, "2024-05-01"), "10:00", "10:30")

	created, err := caseRepo.CreateWithSession(ctx, session)
	if err != nil {
		t.Fatalf("create with session failed: %v", err)
	}
	if _, err := caseRepo.Accept(ctx, created.UUID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	entry := &domain.ReferralEntry{
		CounsellorUUID: peer.UUID,
		AuthorUUID:     counsellor.UUID,
		Remark:         "second opinion wanted",
	}
	updated, err := caseRepo.Referer(ctx, created.UUID, entry, "2024-05-01")
	if err != nil {
		t.Fatalf("referer failed: %v", err)
	}

	if updated.Status != domain.StatusProgress {
		t.Errorf("status = %q, want progress (unchanged)", updated.Status)
	}
	if len(updated.Referrals) != 1 {
		t.Fatalf("referral list length = %d, want 1", len(updated.Referrals))
	}
	if updated.Referrals[0].CounsellorUUID != peer.UUID {
		t.Errorf("referral entry points at %s, want %s", updated.Referrals[0].CounsellorUUID, peer.UUID)
	}

	// Append-only: a second entry grows the list to two.
	again, err := caseRepo.Referer(ctx, created.UUID, &domain.ReferralEntry{
		CounsellorUUID: peer.UUID,
		AuthorUUID:     counsellor.UUID,
		Remark:         "follow-up question",
	}, "")
	if err != nil {
		t.Fatalf("second referer failed: %v", err)
	}
	if len(again.Referrals) != 2 {
		t.Errorf("referral list length = %d, want 2", len(again.Referrals))
	}
}

func TestCaseCloseRecordsReason(t *testing.T) {
	db := newTestDB(t)
	caseRepo := NewCaseRepository(db)
	ctx := context.Background()

	student := seedUser(t, db, "amara", domain.RoleStudent)
	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	session := seedSession(t, db, student, counsellor, testDate(t, "2024-05-01"), "10:00", "10:30")

	created, err := caseRepo.CreateWithSession(ctx, session)
	if err != nil {
		t.Fatalf("create with session failed: %v", err)
	}

	closed, err := caseRepo.Close(ctx, created.UUID, "2024-05-01", "resolved")
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want completed", closed.Status)
	}
	if closed.ReasonForClosing == nil || *closed.ReasonForClosing != "resolved" {
		t.Errorf("reason for closing = %v, want resolved", closed.ReasonForClosing)
	}
	if closed.ConcernRaised == nil || *closed.ConcernRaised != "2024-05-01" {
		t.Errorf("concern raised = %v, want 2024-05-01", closed.ConcernRaised)
	}
}

func TestCaseCounts(t *testing.T) {
	db := newTestDB(t)
	caseRepo := NewCaseRepository(db)
	ctx := context.Background()

	student := seedUser(t, db, "amara", domain.RoleStudent)
	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	other := seedUser(t, db, "farida", domain.RoleCounsellor)

	session := seedSession(t, db, student, counsellor, testDate(t, "2024-05-01"), "10:00", "10:30")
	if _, err := caseRepo.CreateWithSession(ctx, session); err != nil {
		t.Fatalf("create with session failed: %v", err)
	}

	// A case with no session link for this counsellor is invisible to it.
	byCounsellor, err := caseRepo.CountByCounsellor(ctx, counsellor.UUID)
	if err != nil {
		t.Fatalf("count by counsellor failed: %v", err)
	}
	if byCounsellor != 1 {
		t.Errorf("counsellor count = %d, want 1", byCounsellor)
	}

	byOther, err := caseRepo.CountByCounsellor(ctx, other.UUID)
	if err != nil {
		t.Fatalf("count by other counsellor failed: %v", err)
	}
	if byOther != 0 {
		t.Errorf("unlinked counsellor count = %d, want 0", byOther)
	}

	// Ownership counting follows the student even without sessions.
	byStudent, err := caseRepo.CountByStudent(ctx, student.UUID)
	if err != nil {
		t.Fatalf("count by student failed: %v", err)
	}
	if byStudent != 1 {
		t.Errorf("student count = %d, want 1", byStudent)
	}
}

func TestCaseNotFound(t *testing.T) {
	db := newTestDB(t)
	caseRepo := NewCaseRepository(db)
	ctx := context.Background()

	_, err := caseRepo.GetByUUID(ctx, "9a1f0f8e-0000-0000-0000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get missing case = %v, want ErrNotFound", err)
	}

	_, err = caseRepo.Accept(ctx, "9a1f0f8e-0000-0000-0000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("accept missing case = %v, want ErrNotFound", err)
	}
}
