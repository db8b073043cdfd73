package userRepo

import (
	"context"
	"errors"

	"sessionbooker/models"
)

var (
	// ErrNotFound is returned when no user matches the given id or email.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when an insert loses the unique-email race.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
