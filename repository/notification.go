package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/XyvinTech/councelling-backend/domain"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindUnreadByUser(ctx context.Context, userUUID string) (*[]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.WithContext(ctx).
		Where("user_uuid = ? AND is_read = ?", userUUID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return &notifications, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, uuid string) (*domain.Notification, error) {
	res := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("uuid = ?", uuid).
		Update("is_read", true)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to mark notification as read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	var notification domain.Notification
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}
	return &notification, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("uuid IN ?", uuids).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}
