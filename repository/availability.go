package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"

	"gorm.io/gorm"
)

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) domain.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) SetDay(ctx context.Context, counsellorUUID, dayOfWeek string, intervals []domain.Interval) error {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// The day is always replaced as a whole set. Stored intervals are
	// trusted counsellor input; overlaps between them are not checked.
	if err := tx.Where("counsellor_uuid = ? AND day_of_week = ?", counsellorUUID, dayOfWeek).
		Delete(&domain.AvailabilitySlot{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear day availability: %w", err)
	}

	for _, iv := range intervals {
		slot := domain.AvailabilitySlot{
			CounsellorUUID: counsellorUUID,
			DayOfWeek:      dayOfWeek,
			StartTime:      iv.Start,
			EndTime:        iv.End,
		}
		if err := tx.Create(&slot).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to store availability slot: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to save availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) GetDay(ctx context.Context, counsellorUUID, dayOfWeek string) ([]domain.Interval, error) {
	var slots []domain.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("counsellor_uuid = ? AND day_of_week = ?", counsellorUUID, dayOfWeek).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	if len(slots) == 0 {
		return nil, domain.ErrNotFound
	}

	intervals := make([]domain.Interval, len(slots))
	for i, s := range slots {
		intervals[i] = domain.Interval{Start: s.StartTime, End: s.EndTime}
	}
	return intervals, nil
}

func (r *availabilityRepository) GetAvailable(ctx context.Context, counsellorUUID, dayOfWeek string, date time.Time) ([]domain.Interval, error) {
	intervals, err := r.GetDay(ctx, counsellorUUID, dayOfWeek)
	if err != nil {
		return nil, err
	}

	// Subtract intervals already claimed by an active session on that
	// date. Matching is by start-time equality.
	var taken []string
	err = r.db.WithContext(ctx).Model(&domain.Session{}).
		Select("start_time").
		Where("counsellor_uuid = ? AND session_date = ? AND deleted_at IS NULL", counsellorUUID, date).
		Where("status IN ?", domain.ActiveSessionStatuses).
		Scan(&taken).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch claimed slots: %w", err)
	}

	claimed := make(map[string]bool, len(taken))
	for _, t := range taken {
		claimed[t] = true
	}

	available := make([]domain.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !claimed[iv.Start] {
			available = append(available, iv)
		}
	}
	return available, nil
}

func (r *availabilityRepository) RemoveInterval(ctx context.Context, counsellorUUID, dayOfWeek string, interval domain.Interval) error {
	res := r.db.WithContext(ctx).
		Where("counsellor_uuid = ? AND day_of_week = ? AND start_time = ? AND end_time = ?",
			counsellorUUID, dayOfWeek, interval.Start, interval.End).
		Delete(&domain.AvailabilitySlot{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove availability slot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *availabilityRepository) Days(ctx context.Context, counsellorUUID string) ([]string, error) {
	var days []string
	err := r.db.WithContext(ctx).Model(&domain.AvailabilitySlot{}).
		Distinct("day_of_week").
		Where("counsellor_uuid = ?", counsellorUUID).
		Pluck("day_of_week", &days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability days: %w", err)
	}
	return days, nil
}
