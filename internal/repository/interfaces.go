package repository

import (
	"context"

	"user-gate/internal/domain/user"
)

type UserRepository interface {
	FindAll(ctx context.Context) ([]user.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Emails(ctx context.Context) ([]string, error)
}
