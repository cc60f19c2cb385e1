package domain

import (
	"context"
	"time"
)

// AvailabilityRepository stores per-counsellor, per-weekday open intervals.
// Stored intervals are trusted counsellor input; no overlap validation is
// applied to them.
type AvailabilityRepository interface {
	// SetDay replaces the whole interval set for the weekday. An empty set
	// deletes the day entry.
	SetDay(ctx context.Context, counsellorUUID, dayOfWeek string, intervals []Interval) error
	GetDay(ctx context.Context, counsellorUUID, dayOfWeek string) ([]Interval, error)
	// GetAvailable returns the stored intervals minus those whose start
	// time is already claimed by an active session on date.
	GetAvailable(ctx context.Context, counsellorUUID, dayOfWeek string, date time.Time) ([]Interval, error)
	// RemoveInterval deletes one interval by value match; removing the
	// last interval of a day removes the day entry.
	RemoveInterval(ctx context.Context, counsellorUUID, dayOfWeek string, interval Interval) error
	// Days lists the weekdays that currently have at least one interval.
	Days(ctx context.Context, counsellorUUID string) ([]string, error)
}
