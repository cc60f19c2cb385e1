package service

import (
	"context"

	"github.com/XyvinTech/councelling-backend/domain"
)

type counsellorService struct {
	userRepo         domain.UserRepository
	sessionRepo      domain.SessionRepository
	caseRepo         domain.CaseRepository
	availabilityRepo domain.AvailabilityRepository
	notificationRepo domain.NotificationRepository
	counsellorRepo   domain.CounsellorRepository
}

func NewCounsellorService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	caseRepo domain.CaseRepository,
	availabilityRepo domain.AvailabilityRepository,
	notificationRepo domain.NotificationRepository,
	counsellorRepo domain.CounsellorRepository,
) domain.CounsellorUseCase {
	return &counsellorService{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		caseRepo:         caseRepo,
		availabilityRepo: availabilityRepo,
		notificationRepo: notificationRepo,
		counsellorRepo:   counsellorRepo,
	}
}

func (s *counsellorService) GetMyProfile(ctx context.Context, userUUID string) (*domain.User, error) {
	return s.userRepo.GetUserByUUID(ctx, userUUID)
}

func (s *counsellorService) UpdateMyProfile(ctx context.Context, userUUID string, user domain.User) error {
	return s.userRepo.UpdateUser(ctx, userUUID, user)
}

func (s *counsellorService) AddTimes(ctx context.Context, counsellorUUID, dayOfWeek string, intervals []domain.Interval) error {
	return s.availabilityRepo.SetDay(ctx, counsellorUUID, dayOfWeek, intervals)
}

func (s *counsellorService) GetTimes(ctx context.Context, counsellorUUID string) (map[string][]domain.Interval, error) {
	days, err := s.availabilityRepo.Days(ctx, counsellorUUID)
	if err != nil {
		return nil, err
	}
	times := make(map[string][]domain.Interval, len(days))
	for _, day := range days {
		intervals, err := s.availabilityRepo.GetDay(ctx, counsellorUUID, day)
		if err != nil {
			return nil, err
		}
		times[day] = intervals
	}
	return times, nil
}

func (s *counsellorService) RemoveTime(ctx context.Context, counsellorUUID, dayOfWeek string, interval domain.Interval) error {
	return s.availabilityRepo.RemoveInterval(ctx, counsellorUUID, dayOfWeek, interval)
}

func (s *counsellorService) GetMySessions(ctx context.Context, counsellorUUID, status string, page, limit int) (*[]domain.Session, int64, error) {
	return s.sessionRepo.FindByCounsellor(ctx, counsellorUUID, status, page, limit)
}

func (s *counsellorService) GetMyCases(ctx context.Context, counsellorUUID string, page, limit int) (*[]domain.Case, int64, error) {
	cases, err := s.caseRepo.FindByCounsellor(ctx, counsellorUUID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.caseRepo.CountByCounsellor(ctx, counsellorUUID)
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (s *counsellorService) GetCaseSessions(ctx context.Context, caseUUID string) (*[]domain.Session, error) {
	return s.sessionRepo.FindByCase(ctx, caseUUID)
}

func (s *counsellorService) GetSession(ctx context.Context, sessionUUID string) (*domain.Session, error) {
	return s.sessionRepo.GetByUUID(ctx, sessionUUID)
}

func (s *counsellorService) GetBigCalendar(ctx context.Context, counsellorUUID string) ([]domain.CalendarEntry, error) {
	return s.counsellorRepo.GetBigCalendar(ctx, counsellorUUID)
}

func (s *counsellorService) GetNotifications(ctx context.Context, userUUID string) (*[]domain.Notification, error) {
	return s.notificationRepo.FindUnreadByUser(ctx, userUUID)
}

func (s *counsellorService) MarkNotificationRead(ctx context.Context, uuid string) (*domain.Notification, error) {
	return s.notificationRepo.MarkAsRead(ctx, uuid)
}
