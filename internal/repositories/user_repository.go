package repositories

import (
	"context"
	"errors"

	"investplus/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMobileTaken       = errors.New("mobile number already registered")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByMobile(ctx context.Context, mobile string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	IncrementTokenVersion(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, hashedPassword string) error

	// List retrieves users with pagination, newest first.
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
}
