package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"

	"gorm.io/gorm"
)

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) domain.CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) CreateWithSession(ctx context.Context, session *domain.Session) (*domain.Case, error) {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 1️⃣ Next CS_### code. Deleted cases keep their number, so count
	// everything ever created.
	var total int64
	if err := tx.Unscoped().Model(&domain.Case{}).Count(&total).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to count cases: %w", err)
	}

	newCase := domain.Case{
		SequenceCode: fmt.Sprintf("CS_%03d", total+1),
		StudentUUID:  session.StudentUUID,
		Status:       domain.StatusPending,
		SessionCount: 1,
	}
	if err := tx.Create(&newCase).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	// 2️⃣ Attach the session as ordinal 1 and stamp its sequence code.
	// The code is assigned exactly once: a session that already carries
	// one keeps it.
	updates := map[string]interface{}{
		"case_uuid":    newCase.UUID,
		"case_ordinal": 1,
	}
	if session.SequenceCode == nil {
		updates["sequence_code"] = fmt.Sprintf("%s/SC_01", newCase.SequenceCode)
	}
	if err := tx.Model(&domain.Session{}).
		Where("uuid = ?", session.UUID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to link session to case: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to save case: %w", err)
	}

	return r.GetByUUID(ctx, newCase.UUID)
}

func (r *caseRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Case, error) {
	var caseRow domain.Case
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("case_ordinal ASC")
		}).
		Preload("Sessions.Counsellor").
		Preload("Referrals").
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		First(&caseRow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}
	return &caseRow, nil
}

func (r *caseRepository) Accept(ctx context.Context, uuid string) (*domain.Case, error) {
	return r.transition(ctx, uuid, domain.StatusProgress,
		[]string{domain.StatusPending}, nil)
}

func (r *caseRepository) Close(ctx context.Context, uuid, concernRaised, reasonForClosing string) (*domain.Case, error) {
	return r.transition(ctx, uuid, domain.StatusCompleted,
		[]string{domain.StatusPending, domain.StatusProgress},
		map[string]interface{}{
			"concern_raised":     concernRaised,
			"reason_for_closing": reasonForClosing,
		})
}

func (r *caseRepository) Refer(ctx context.Context, uuid, concernRaised string) (*domain.Case, error) {
	return r.transition(ctx, uuid, domain.StatusReferred,
		[]string{domain.StatusPending, domain.StatusProgress},
		map[string]interface{}{"concern_raised": concernRaised})
}

func (r *caseRepository) Cancel(ctx context.Context, uuid string) (*domain.Case, error) {
	return r.transition(ctx, uuid, domain.StatusCancelled,
		[]string{domain.StatusPending, domain.StatusProgress}, nil)
}

// transition applies one guarded status move; extra columns ride along in
// the same update.
func (r *caseRepository) transition(ctx context.Context, uuid, target string, from []string, extra map[string]interface{}) (*domain.Case, error) {
	updates := map[string]interface{}{"status": target}
	for k, v := range extra {
		updates[k] = v
	}

	res := r.db.WithContext(ctx).Model(&domain.Case{}).
		Where("uuid = ? AND status IN ?", uuid, from).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update case: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, r.transitionFailure(ctx, uuid, target)
	}

	return r.GetByUUID(ctx, uuid)
}

func (r *caseRepository) Referer(ctx context.Context, uuid string, entry *domain.ReferralEntry, concernRaised string) (*domain.Case, error) {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var caseRow domain.Case
	if err := tx.Where("uuid = ?", uuid).First(&caseRow).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	// Peer-feedback referral: the list grows, the status does not move.
	entry.CaseUUID = uuid
	if err := tx.Create(entry).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to append referral: %w", err)
	}

	if concernRaised != "" {
		if err := tx.Model(&domain.Case{}).
			Where("uuid = ?", uuid).
			Update("concern_raised", concernRaised).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update case concern: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to save referral: %w", err)
	}

	return r.GetByUUID(ctx, uuid)
}

func (r *caseRepository) AppendSession(ctx context.Context, uuid, sessionUUID, concernRaised string) (*domain.Case, error) {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var caseRow domain.Case
	if err := tx.Where("uuid = ?", uuid).First(&caseRow).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	var session domain.Session
	if err := tx.Where("uuid = ?", sessionUUID).First(&session).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	// 1️⃣ The session list only grows; the ordinal comes from the bumped
	// counter so codes never repeat even if sessions are later deleted.
	ordinal := caseRow.SessionCount + 1
	caseUpdates := map[string]interface{}{"session_count": ordinal}
	if concernRaised != "" {
		caseUpdates["concern_raised"] = concernRaised
	}
	if err := tx.Model(&domain.Case{}).
		Where("uuid = ?", uuid).
		Updates(caseUpdates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	// 2️⃣ Link the session; a sequence code is assigned only if missing.
	sessionUpdates := map[string]interface{}{
		"case_uuid":    uuid,
		"case_ordinal": ordinal,
	}
	if session.SequenceCode == nil {
		sessionUpdates["sequence_code"] = fmt.Sprintf("%s/SC_%02d", caseRow.SequenceCode, ordinal)
	}
	if err := tx.Model(&domain.Session{}).
		Where("uuid = ?", sessionUUID).
		Updates(sessionUpdates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to link session to case: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to save case update: %w", err)
	}

	return r.GetByUUID(ctx, uuid)
}

func (r *caseRepository) FindByStudent(ctx context.Context, studentUUID string, page, limit int) (*[]domain.Case, error) {
	return r.findCases(ctx, r.db.WithContext(ctx).Model(&domain.Case{}).
		Where("student_uuid = ? AND deleted_at IS NULL", studentUUID), page, limit)
}

func (r *caseRepository) FindByCounsellor(ctx context.Context, counsellorUUID string, page, limit int) (*[]domain.Case, error) {
	// A case is reachable for a counsellor only through one of its
	// sessions; a zero-session case never shows up here.
	sub := r.db.Model(&domain.Session{}).
		Select("case_uuid").
		Where("counsellor_uuid = ? AND case_uuid IS NOT NULL", counsellorUUID)
	return r.findCases(ctx, r.db.WithContext(ctx).Model(&domain.Case{}).
		Where("uuid IN (?) AND deleted_at IS NULL", sub), page, limit)
}

func (r *caseRepository) findCases(ctx context.Context, query *gorm.DB, page, limit int) (*[]domain.Case, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var cases []domain.Case
	err := query.
		Preload("Student").
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("case_ordinal ASC")
		}).
		Preload("Referrals").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return &cases, nil
}

func (r *caseRepository) CountByCounsellor(ctx context.Context, counsellorUUID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Case{}).
		Where("uuid IN (?)", r.db.Model(&domain.Session{}).
			Select("case_uuid").
			Where("counsellor_uuid = ? AND case_uuid IS NOT NULL", counsellorUUID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count counsellor cases: %w", err)
	}
	return count, nil
}

func (r *caseRepository) CountByStudent(ctx context.Context, studentUUID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Case{}).
		Where("student_uuid = ? AND deleted_at IS NULL", studentUUID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count student cases: %w", err)
	}
	return count, nil
}

func (r *caseRepository) Delete(ctx context.Context, uuid string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Case{}).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to delete case: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *caseRepository) transitionFailure(ctx context.Context, uuid, attempted string) error {
	var caseRow domain.Case
	err := r.db.WithContext(ctx).Select("status").Where("uuid = ?", uuid).First(&caseRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to inspect case status: %w", err)
	}
	return &domain.TransitionError{Entity: "case", Current: caseRow.Status, Attempted: attempted}
}
