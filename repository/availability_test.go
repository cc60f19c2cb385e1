package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/XyvinTech/councelling-backend/domain"
)

func TestSetDayReplacesWholeSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvailabilityRepository(db)
	ctx := context.Background()

	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)

	err := repo.SetDay(ctx, counsellor.UUID, "monday", []domain.Interval{
		{Start: "09:00", End: "09:30"},
		{Start: "10:00", End: "10:30"},
	})
	if err != nil {
		t.Fatalf("set day failed: %v", err)
	}

	// Setting again replaces, never merges.
	err = repo.SetDay(ctx, counsellor.UUID, "monday", []domain.Interval{
		{Start: "14:00", End: "14:30"},
	})
	if err != nil {
		t.Fatalf("second set day failed: %v", err)
	}

	intervals, err := repo.GetDay(ctx, counsellor.UUID, "monday")
	if err != nil {
		t.Fatalf("get day failed: %v", err)
	}
	if len(intervals) != 1 || intervals[0].Start != "14:00" {
		t.Errorf("day = %v, want single 14:00 interval", intervals)
	}

	// An empty set deletes the day entirely.
	if err := repo.SetDay(ctx, counsellor.UUID, "monday", nil); err != nil {
		t.Fatalf("clearing set day failed: %v", err)
	}
	if _, err := repo.GetDay(ctx, counsellor.UUID, "monday"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cleared day = %v, want ErrNotFound", err)
	}
}

func TestRemoveIntervalByValue(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvailabilityRepository(db)
	ctx := context.Background()

	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)

	err := repo.SetDay(ctx, counsellor.UUID, "tuesday", []domain.Interval{
		{Start: "09:00", End: "09:30"},
		{Start: "10:00", End: "10:30"},
	})
	if err != nil {
		t.Fatalf("set day failed: %v", err)
	}

	if err := repo.RemoveInterval(ctx, counsellor.UUID, "tuesday", domain.Interval{Start: "09:00", End: "09:30"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	intervals, err := repo.GetDay(ctx, counsellor.UUID, "tuesday")
	if err != nil {
		t.Fatalf("get day failed: %v", err)
	}
	if len(intervals) != 1 || intervals[0].Start != "10:00" {
		t.Errorf("day = %v, want single 10:00 interval", intervals)
	}

	// Removing something that is not there reports not found.
	err = repo.RemoveInterval(ctx, counsellor.UUID, "tuesday", domain.Interval{Start: "09:00", End: "09:30"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("remove of missing interval = %v, want ErrNotFound", err)
	}
}

func TestGetAvailableSubtractsClaimedSlots(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvailabilityRepository(db)
	sessionRepo := NewSessionRepository(db)
	ctx := context.Background()

	student := seedUser(t, db, "amara", domain.RoleStudent)
	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	date := testDate(t, "2024-05-06") // a monday

	err := repo.SetDay(ctx, counsellor.UUID, "monday", []domain.Interval{
		{Start: "09:00", End: "09:30"},
		{Start: "10:00", End: "10:30"},
		{Start: "11:00", End: "11:30"},
	})
	if err != nil {
		t.Fatalf("set day failed: %v", err)
	}

	// Claim the 10:00 slot with a pending session.
	seedSession(t, db, student, counsellor, date, "10:00", "10:30")

	available, err := repo.GetAvailable(ctx, counsellor.UUID, "monday", date)
	if err != nil {
		t.Fatalf("get available failed: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("available = %v, want 2 intervals", available)
	}
	for _, iv := range available {
		if iv.Start == "10:00" {
			t.Errorf("claimed 10:00 slot still offered")
		}
	}

	// A cancelled session releases its slot.
	blocked := seedSession(t, db, student, counsellor, date, "11:00", "11:30")
	if _, err := sessionRepo.Cancel(ctx, blocked.UUID, domain.ActorStudent, "changed plans"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	available, err = repo.GetAvailable(ctx, counsellor.UUID, "monday", date)
	if err != nil {
		t.Fatalf("get available failed: %v", err)
	}
	for _, iv := range available {
		if iv.Start == "11:00" {
			return // released as expected
		}
	}
	t.Errorf("cancelled session still blocks its slot: %v", available)
}

func TestDaysListsDeclaredWeekdays(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvailabilityRepository(db)
	ctx := context.Background()

	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)

	if err := repo.SetDay(ctx, counsellor.UUID, "monday", []domain.Interval{{Start: "09:00", End: "09:30"}}); err != nil {
		t.Fatalf("set monday failed: %v", err)
	}
	if err := repo.SetDay(ctx, counsellor.UUID, "thursday", []domain.Interval{{Start: "09:00", End: "09:30"}}); err != nil {
		t.Fatalf("set thursday failed: %v", err)
	}

	days, err := repo.Days(ctx, counsellor.UUID)
	if err != nil {
		t.Fatalf("days failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("days = %v, want 2 entries", days)
	}
	found := map[string]bool{}
	for _, d := range days {
		found[d] = true
	}
	if !found["monday"] || !found["thursday"] {
		t.Errorf("days = %v, want monday and thursday", days)
	}
}

func TestGetAvailableIgnoresDeletedSessions(t *testing.T) {
	db := newTestDB(t)
	repo := NewAvailabilityRepository(db)
	sessionRepo := NewSessionRepository(db)
	ctx := context.Background()

	counsellor := seedUser(t, db, "jacob", domain.RoleCounsellor)
	student := seedUser(t, db, "amara", domain.RoleStudent)
	date := testDate(t, "2024-05-06") // a monday

	err := repo.SetDay(ctx, counsellor.UUID, "monday", []domain.Interval{
		{Start: "10:00", End: "10:30"},
	})
	if err != nil {
		t.Fatalf("set day failed: %v", err)
	}

	session := seedSession(t, db, student, counsellor, date, "10:00", "10:30")
	if err := sessionRepo.Delete(ctx, session.UUID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	available, err := repo.GetAvailable(ctx, counsellor.UUID, "monday", date)
	if err != nil {
		t.Fatalf("get available failed: %v", err)
	}
	if len(available) != 1 || available[0].Start != "10:00" {
		t.Errorf("deleted session still claims its slot: %v", available)
	}
}
