package repository

import (
	"testing"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// One connection keeps the in-memory database alive for the test.
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
		&domain.CounsellingType{},
		&domain.Event{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *domain.User {
	t.Helper()
	user := domain.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return &user
}

func seedSession(t *testing.T, db *gorm.DB, student, counsellor *domain.User, date time.Time, start, end string) *domain.Session {
	t.Helper()
	session := domain.Session{
		StudentUUID:    student.UUID,
		CounsellorUUID: counsellor.UUID,
		SessionDate:    date,
		StartTime:      start,
		EndTime:        end,
		Type:           "career",
		Description:    "initial request",
		Status:         domain.StatusPending,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return &session
}

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		t.Fatalf("bad test date %s: %v", value, err)
	}
	return date
}
