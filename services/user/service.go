package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userRepo "sessionbooker/database/repository/user"
	"sessionbooker/models"
	"sessionbooker/utils"
)

const tokenTTL = 72 * time.Hour

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates an account and signs the user in.
func (s *DefaultUserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	switch {
	case name == "" || len(name) > 100:
		return nil, "", fmt.Errorf("%w: name is required and cannot exceed 100 characters", ErrInvalidInput)
	case email == "" || !strings.Contains(email, "@"):
		return nil, "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	case len(password) < 8:
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate verifies credentials and issues a token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// issueToken signs a JWT and caches its hash so it can be revoked.
func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := utils.CacheAuthToken(ctx, u.ID, utils.HashToken(token), tokenTTL); err != nil {
		return "", fmt.Errorf("failed to cache auth token: %w", err)
	}
	return token, nil
}

// GetUserByID returns the full user record.
func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetProfile returns the public projection of the user.
func (s *DefaultUserService) GetProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

// UpdateProfile applies the provided profile fields. Email and role are not
// editable through this path.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.UserProfile, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > 100 {
			return nil, fmt.Errorf("%w: name is required and cannot exceed 100 characters", ErrInvalidInput)
		}
		u.Name = name
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Skills != nil {
		u.Skills = *in.Skills
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u.Profile(), nil
}

// UpdateFCMToken records the device push token used by the notifier.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	u.FCMToken = token
	if err := s.Repo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to update FCM token: %w", err)
	}
	return nil
}

// RevokeToken invalidates the user's cached auth token.
func (s *DefaultUserService) RevokeToken(ctx context.Context, id string) error {
	return utils.DropAuthToken(ctx, id)
}
