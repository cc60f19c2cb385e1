package service

import (
	"context"
	"fmt"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/utils"
)

type studentService struct {
	userRepo         domain.UserRepository
	sessionRepo      domain.SessionRepository
	caseRepo         domain.CaseRepository
	availabilityRepo domain.AvailabilityRepository
	notificationRepo domain.NotificationRepository
}

func NewStudentService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	caseRepo domain.CaseRepository,
	availabilityRepo domain.AvailabilityRepository,
	notificationRepo domain.NotificationRepository,
) domain.StudentUseCase {
	return &studentService{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		caseRepo:         caseRepo,
		availabilityRepo: availabilityRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *studentService) GetMyProfile(ctx context.Context, userUUID string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, userUUID)
}

func (s *studentService) UpdateMyProfile(ctx context.Context, userUUID string, user domain.User) error {
	return s.userRepo.UpdateUser(ctx, userUUID, user)
}

func (s *studentService) GetAllCounsellors(ctx context.Context, counsellorType string) (*[]domain.User, error) {
	return s.userRepo.FindCounsellors(ctx, counsellorType)
}

func (s *studentService) GetCounsellorDays(ctx context.Context, counsellorUUID string) ([]string, error) {
	return s.availabilityRepo.Days(ctx, counsellorUUID)
}

func (s *studentService) GetAvailableTimes(ctx context.Context, counsellorUUID, dayOfWeek string, date time.Time) ([]domain.Interval, error) {
	if dayOfWeek == "" {
		dayOfWeek = utils.DayName(date.Weekday())
	} else {
		wd, ok := utils.ParseWeekday(dayOfWeek)
		if !ok {
			return nil, fmt.Errorf("%w: unknown day of week %q", domain.ErrInvalidInput, dayOfWeek)
		}
		if wd != date.Weekday() {
			return nil, fmt.Errorf("%w: %s is not a %s", domain.ErrInvalidInput,
				date.Format(domain.DateLayout), utils.DayName(wd))
		}
		dayOfWeek = utils.DayName(wd)
	}
	return s.availabilityRepo.GetAvailable(ctx, counsellorUUID, dayOfWeek, date)
}

func (s *studentService) GetMySessions(ctx context.Context, studentUUID, status string, page, limit int) (*[]domain.Session, int64, error) {
	return s.sessionRepo.FindByStudent(ctx, studentUUID, status, page, limit)
}

func (s *studentService) GetMyCases(ctx context.Context, studentUUID string, page, limit int) (*[]domain.Case, int64, error) {
	cases, err := s.caseRepo.FindByStudent(ctx, studentUUID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.caseRepo.CountByStudent(ctx, studentUUID)
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (s *studentService) GetCaseSessions(ctx context.Context, caseUUID string) (*[]domain.Session, error) {
	return s.sessionRepo.FindByCase(ctx, caseUUID)
}

func (s *studentService) GetSession(ctx context.Context, sessionUUID string) (*domain.Session, error) {
	return s.sessionRepo.GetByUUID(ctx, sessionUUID)
}

func (s *studentService) GetNotifications(ctx context.Context, userUUID string) (*[]domain.Notification, error) {
	return s.notificationRepo.FindUnreadByUser(ctx, userUUID)
}

func (s *studentService) MarkNotificationRead(ctx context.Context, uuid string) (*domain.Notification, error) {
	return s.notificationRepo.MarkAsRead(ctx, uuid)
}

func (s *studentService) MarkNotificationsRead(ctx context.Context, uuids []string) error {
	return s.notificationRepo.MarkAllAsRead(ctx, uuids)
}
