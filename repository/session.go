package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 1️⃣ Reject intervals that collide with another active session of the
	// same counsellor on the same date. HH:MM strings compare correctly
	// as text.
	var overlapCount int64
	err := tx.Model(&domain.Session{}).
		Where("counsellor_uuid = ? AND session_date = ? AND deleted_at IS NULL", session.CounsellorUUID, session.SessionDate).
		Where("status IN ?", domain.ActiveSessionStatuses).
		Where("start_time < ? AND end_time > ?", session.EndTime, session.StartTime).
		Count(&overlapCount).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check session overlap: %w", err)
	}
	if overlapCount > 0 {
		tx.Rollback()
		return fmt.Errorf("counsellor already has a session on %s between %s and %s",
			session.SessionDate.Format(domain.DateLayout), session.StartTime, session.EndTime)
	}

	// 2️⃣ Insert as pending unless the caller fixed the status already
	// (counsellor follow-up entries start in progress).
	if session.Status == "" {
		session.Status = domain.StatusPending
	}
	if err := tx.Create(session).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Counsellor").
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Accept(ctx context.Context, uuid string, platform, link *string) (*domain.Session, error) {
	updates := map[string]interface{}{"status": domain.StatusProgress}
	if platform != nil {
		updates["platform"] = platform
	}
	if link != nil {
		updates["meeting_link"] = link
	}

	// The status guard in the WHERE clause is the whole concurrency
	// control: two racing accepts produce exactly one affected row.
	res := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("uuid = ? AND status IN ? AND deleted_at IS NULL", uuid,
			domain.SessionSources(domain.StatusProgress, domain.ActorCounsellor)).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to accept session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, r.transitionFailure(ctx, uuid, domain.StatusProgress)
	}

	return r.GetByUUID(ctx, uuid)
}

func (r *sessionRepository) Reschedule(ctx context.Context, uuid, actor string, newDate time.Time, newInterval domain.Interval, remark string) (*domain.Session, error) {
	target := domain.RescheduleTarget(actor)

	updates := map[string]interface{}{
		"status":       target,
		"session_date": newDate,
		"start_time":   newInterval.Start,
		"end_time":     newInterval.End,
	}

	// Counsellor reschedule is self-approving: pending or an earlier
	// student reschedule both move straight to progress. The allowed source
	// statuses come from the transition table.
	if actor == domain.ActorCounsellor {
		updates["counsellor_remark"] = remark
	} else {
		updates["student_remark"] = remark
	}

	res := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("uuid = ? AND status IN ? AND deleted_at IS NULL", uuid,
			domain.SessionSources(target, actor)).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to reschedule session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, r.transitionFailure(ctx, uuid, target)
	}

	return r.GetByUUID(ctx, uuid)
}

func (r *sessionRepository) Cancel(ctx context.Context, uuid, actor, remark string) (*domain.Session, error) {
	updates := map[string]interface{}{"status": domain.StatusCancelled}
	if actor == domain.ActorCounsellor {
		updates["counsellor_remark"] = remark
	} else {
		updates["student_remark"] = remark
	}

	res := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("uuid = ? AND status IN ? AND deleted_at IS NULL", uuid,
			domain.SessionSources(domain.StatusCancelled, actor)).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to cancel session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, r.transitionFailure(ctx, uuid, domain.StatusCancelled)
	}

	return r.GetByUUID(ctx, uuid)
}

func (r *sessionRepository) Close(ctx context.Context, uuid, interactionNotes, caseDetails string) (*domain.Session, error) {
	res := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("uuid = ? AND status IN ? AND deleted_at IS NULL", uuid,
			domain.SessionSources(domain.StatusCompleted, domain.ActorCounsellor)).
		Updates(map[string]interface{}{
			"status":            domain.StatusCompleted,
			"interaction_notes": interactionNotes,
			"case_details":      caseDetails,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to close session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, r.transitionFailure(ctx, uuid, domain.StatusCompleted)
	}

	return r.GetByUUID(ctx, uuid)
}

func (r *sessionRepository) AddDetails(ctx context.Context, uuid, interactionNotes string) error {
	res := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		Update("interaction_notes", interactionNotes)
	if res.Error != nil {
		return fmt.Errorf("failed to add session details: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sessionRepository) FindByStudent(ctx context.Context, studentUUID, status string, page, limit int) (*[]domain.Session, int64, error) {
	return r.findSessions(ctx, "student_uuid", studentUUID, status, page, limit)
}

func (r *sessionRepository) FindByCounsellor(ctx context.Context, counsellorUUID, status string, page, limit int) (*[]domain.Session, int64, error) {
	return r.findSessions(ctx, "counsellor_uuid", counsellorUUID, status, page, limit)
}

func (r *sessionRepository) findSessions(ctx context.Context, column, value, status string, page, limit int) (*[]domain.Session, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where(column+" = ? AND deleted_at IS NULL", value)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	var sessions []domain.Session
	err := query.
		Preload("Student").
		Preload("Counsellor").
		Order("session_date DESC, start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	return &sessions, total, nil
}

func (r *sessionRepository) FindByCase(ctx context.Context, caseUUID string) (*[]domain.Session, error) {
	var sessions []domain.Session
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Counsellor").
		Where("case_uuid = ? AND deleted_at IS NULL", caseUUID).
		Order("case_ordinal ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case sessions: %w", err)
	}
	return &sessions, nil
}

func (r *sessionRepository) CountByStudentAndCounsellor(ctx context.Context, studentUUID, counsellorUUID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("student_uuid = ? AND counsellor_uuid = ? AND deleted_at IS NULL", studentUUID, counsellorUUID).
		Count(&count).Error
	return count, err
}

func (r *sessionRepository) Delete(ctx context.Context, uuid string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// transitionFailure figures out why a guarded update touched no rows:
// either the session is gone, or its current status forbids the move.
func (r *sessionRepository) transitionFailure(ctx context.Context, uuid, attempted string) error {
	var session domain.Session
	err := r.db.WithContext(ctx).Select("status").Where("uuid = ? AND deleted_at IS NULL", uuid).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to inspect session status: %w", err)
	}
	return &domain.TransitionError{Entity: "session", Current: session.Status, Attempted: attempted}
}
