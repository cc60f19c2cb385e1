package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND deleted_at IS NULL", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, uuid string, payload domain.User) error {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var existing domain.User
	err := tx.Where("uuid = ? AND deleted_at IS NULL", uuid).First(&existing).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	// Phone must stay unique across live users.
	if payload.Phone != "" {
		var phoneCount int64
		err = tx.Model(&domain.User{}).
			Where("phone = ? AND uuid != ? AND deleted_at IS NULL", payload.Phone, uuid).
			Count(&phoneCount).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to check phone: %w", err)
		}
		if phoneCount > 0 {
			tx.Rollback()
			return errors.New("phone number already in use")
		}
	}

	if err := tx.Model(&domain.User{}).
		Where("uuid = ?", uuid).
		Updates(payload).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update user: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, uuid string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("uuid = ? AND deleted_at IS NULL", uuid).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) FindCounsellors(ctx context.Context, counsellorType string) (*[]domain.User, error) {
	query := r.db.WithContext(ctx).
		Where("role = ? AND deleted_at IS NULL", domain.RoleCounsellor)
	if counsellorType != "" {
		query = query.Where("counsellor_type = ?", counsellorType)
	}

	var counsellors []domain.User
	if err := query.Order("name ASC").Find(&counsellors).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch counsellors: %w", err)
	}
	return &counsellors, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role string) (*[]domain.User, error) {
	query := r.db.WithContext(ctx).Where("deleted_at IS NULL")
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var users []domain.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return &users, nil
}
