package user

import (
	"context"
	"errors"

	"sessionbooker/models"
)

var (
	// ErrNotFound is returned when the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed sign-in. The message is
	// identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput wraps field validation failures.
	ErrInvalidInput = errors.New("invalid user input")
)

// ProfileUpdate carries optional profile changes; nil means unchanged.
type ProfileUpdate struct {
	Name   *string   `json:"name"`
	Bio    *string   `json:"bio"`
	Skills *[]string `json:"skills"`
}

// UserService manages accounts, credentials and profiles.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.UserProfile, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	RevokeToken(ctx context.Context, id string) error
}
