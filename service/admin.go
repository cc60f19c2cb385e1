package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/XyvinTech/councelling-backend/domain"

	"golang.org/x/crypto/bcrypt"
)

type adminService struct {
	userRepo    domain.UserRepository
	adminRepo   domain.AdminRepository
	sessionRepo domain.SessionRepository
	caseRepo    domain.CaseRepository
}

func NewAdminService(
	userRepo domain.UserRepository,
	adminRepo domain.AdminRepository,
	sessionRepo domain.SessionRepository,
	caseRepo domain.CaseRepository,
) domain.AdminUseCase {
	return &adminService{
		userRepo:    userRepo,
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		caseRepo:    caseRepo,
	}
}

func (s *adminService) CreateCounsellor(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Role = domain.RoleCounsellor
	return s.createUser(ctx, user)
}

func (s *adminService) CreateStudent(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Role = domain.RoleStudent
	return s.createUser(ctx, user)
}

func (s *adminService) createUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := s.userRepo.GetUserByEmail(ctx, user.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminService) GetAllUsers(ctx context.Context) (*[]domain.User, error) {
	return s.userRepo.FindByRole(ctx, "")
}

func (s *adminService) GetUser(ctx context.Context, uuid string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, uuid)
}

func (s *adminService) UpdateUser(ctx context.Context, uuid string, user domain.User) error {
	return s.userRepo.UpdateUser(ctx, uuid, user)
}

func (s *adminService) DeleteUser(ctx context.Context, uuid string) error {
	return s.userRepo.DeleteUser(ctx, uuid)
}

func (s *adminService) CreateType(ctx context.Context, t *domain.CounsellingType) (*domain.CounsellingType, error) {
	return s.adminRepo.CreateType(ctx, t)
}

func (s *adminService) GetAllTypes(ctx context.Context) ([]domain.CounsellingType, error) {
	return s.adminRepo.GetAllTypes(ctx)
}

func (s *adminService) UpdateType(ctx context.Context, t *domain.CounsellingType) error {
	return s.adminRepo.UpdateType(ctx, t)
}

func (s *adminService) DeleteType(ctx context.Context, id int) error {
	return s.adminRepo.DeleteType(ctx, id)
}

func (s *adminService) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	return s.adminRepo.CreateEvent(ctx, e)
}

func (s *adminService) GetAllEvents(ctx context.Context, page, limit int) ([]domain.Event, int64, error) {
	return s.adminRepo.GetAllEvents(ctx, page, limit)
}

func (s *adminService) UpdateEvent(ctx context.Context, e *domain.Event) error {
	return s.adminRepo.UpdateEvent(ctx, e)
}

func (s *adminService) DeleteEvent(ctx context.Context, uuid string) error {
	return s.adminRepo.DeleteEvent(ctx, uuid)
}

func (s *adminService) DeleteSession(ctx context.Context, uuid string) error {
	return s.sessionRepo.Delete(ctx, uuid)
}

func (s *adminService) DeleteCase(ctx context.Context, uuid string) error {
	return s.caseRepo.Delete(ctx, uuid)
}
