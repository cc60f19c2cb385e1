package repository

import (
	"context"
	"fmt"

	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/utils"

	"gorm.io/gorm"
)

type counsellorRepository struct {
	db *gorm.DB
}

func NewCounsellorRepository(db *gorm.DB) domain.CounsellorRepository {
	return &counsellorRepository{db: db}
}

// GetBigCalendar maps the counsellor's sessions to calendar entries.
func (r *counsellorRepository) GetBigCalendar(ctx context.Context, counsellorUUID string) ([]domain.CalendarEntry, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("counsellor_uuid = ? AND deleted_at IS NULL", counsellorUUID).
		Where("status IN ?", []string{domain.StatusPending, domain.StatusProgress, domain.StatusRescheduled}).
		Order("session_date ASC, start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar sessions: %w", err)
	}

	entries := make([]domain.CalendarEntry, 0, len(sessions))
	for _, s := range sessions {
		title := s.Type
		if s.Student != nil {
			title = fmt.Sprintf("%s (%s)", utils.TitleName(s.Student.Name), s.Type)
		}
		entries = append(entries, domain.CalendarEntry{
			Title: title,
			Start: utils.CombineDateTime(s.SessionDate, s.StartTime),
			End:   utils.CombineDateTime(s.SessionDate, s.EndTime),
		})
	}
	return entries, nil
}
