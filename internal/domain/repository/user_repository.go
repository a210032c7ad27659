package repository

import (
	"context"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Create returns ErrAlreadyExists when the email is taken and GetBy* return
// ErrNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
