package domain

import "context"

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthUseCase interface {
	// Login authenticates against the given role; a counsellor token can
	// not be minted through the student login and vice versa.
	Login(ctx context.Context, email, password, role string) (*AuthTokens, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUUID(ctx context.Context, uuid string) (*User, error)
	UpdateUser(ctx context.Context, uuid string, user User) error
	DeleteUser(ctx context.Context, uuid string) error
	FindCounsellors(ctx context.Context, counsellorType string) (*[]User, error)
	FindByRole(ctx context.Context, role string) (*[]User, error)
}
