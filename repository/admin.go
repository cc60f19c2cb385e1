package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"

	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) CreateType(ctx context.Context, t *domain.CounsellingType) (*domain.CounsellingType, error) {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("failed to create counselling type: %w", err)
	}
	return t, nil
}

func (r *adminRepository) GetAllTypes(ctx context.Context) ([]domain.CounsellingType, error) {
	var types []domain.CounsellingType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch counselling types: %w", err)
	}
	return types, nil
}

func (r *adminRepository) UpdateType(ctx context.Context, t *domain.CounsellingType) error {
	res := r.db.WithContext(ctx).Model(&domain.CounsellingType{}).
		Where("id = ?", t.ID).
		Update("name", t.Name)
	if res.Error != nil {
		return fmt.Errorf("failed to update counselling type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *adminRepository) DeleteType(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&domain.CounsellingType{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete counselling type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *adminRepository) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return e, nil
}

func (r *adminRepository) GetAllEvents(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&domain.Event{}).Where("deleted_at IS NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	var events []domain.Event
	err := query.
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, total, nil
}

func (r *adminRepository) UpdateEvent(ctx context.Context, e *domain.Event) error {
	var existing domain.Event
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND deleted_at IS NULL", e.UUID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to fetch event: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&domain.Event{}).
		Where("uuid = ?", e.UUID).
		Updates(e).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *adminRepository) DeleteEvent(ctx context.Context, uuid string) error {
	res := r.db.WithContext(ctx).Model(&domain.Event{}).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
