package service

import (
	"context"
	"errors"
	"time"

	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/utils"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo     domain.UserRepository
	accessToken  *utils.JWTManager
	refreshToken *utils.JWTManager
}

func NewAuthService(userRepo domain.UserRepository, secret string) domain.AuthUseCase {
	return &authService{
		userRepo:     userRepo,
		accessToken:  utils.NewJWTManager(secret, time.Hour),
		refreshToken: utils.NewJWTManager(secret, 7*24*time.Hour),
	}
}

func (s *authService) Login(ctx context.Context, email, password, role string) (*domain.AuthTokens, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	// Each login endpoint is role-bound: a counsellor account can not mint
	// a token through the student login and vice versa.
	if user.Role != role {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	accessToken, err := s.accessToken.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refreshToken.GenerateToken(user.UUID, user.Role)
	if err != nil {
		return nil, err
	}

	return &domain.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
