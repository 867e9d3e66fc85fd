package user

import "context"

type Repository interface {
	Create(ctx context.Context, record User) error
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	ListAll(ctx context.Context) ([]User, error)
}
