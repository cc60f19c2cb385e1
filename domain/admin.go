package domain

import "context"

type AdminUseCase interface {
	CreateCounsellor(ctx context.Context, user *User) (*User, error)
	CreateStudent(ctx context.Context, user *User) (*User, error)
	GetAllUsers(ctx context.Context) (*[]User, error)
	GetUser(ctx context.Context, uuid string) (*User, error)
	UpdateUser(ctx context.Context, uuid string, user User) error
	DeleteUser(ctx context.Context, uuid string) error

	CreateType(ctx context.Context, t *CounsellingType) (*CounsellingType, error)
	GetAllTypes(ctx context.Context) ([]CounsellingType, error)
	UpdateType(ctx context.Context, t *CounsellingType) error
	DeleteType(ctx context.Context, id int) error

	CreateEvent(ctx context.Context, e *Event) (*Event, error)
	GetAllEvents(ctx context.Context, page, limit int) ([]Event, int64, error)
	UpdateEvent(ctx context.Context, e *Event) error
	DeleteEvent(ctx context.Context, uuid string) error

	// Administrative deletes; the only path that ever removes a session
	// or a case.
	DeleteSession(ctx context.Context, uuid string) error
	DeleteCase(ctx context.Context, uuid string) error
}

type AdminRepository interface {
	CreateType(ctx context.Context, t *CounsellingType) (*CounsellingType, error)
	GetAllTypes(ctx context.Context) ([]CounsellingType, error)
	UpdateType(ctx context.Context, t *CounsellingType) error
	DeleteType(ctx context.Context, id int) error

	CreateEvent(ctx context.Context, e *Event) (*Event, error)
	GetAllEvents(ctx context.Context, page, limit int) ([]Event, int64, error)
	UpdateEvent(ctx context.Context, e *Event) error
	DeleteEvent(ctx context.Context, uuid string) error
}
