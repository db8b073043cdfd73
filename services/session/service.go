package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	sessionRepo "sessionbooker/database/repository/session"
	"sessionbooker/models"
	"sessionbooker/services/booking"
)

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Repo  sessionRepo.SessionRepository
	Clock booking.Clock
}

func (s *DefaultSessionService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// CreateSession publishes a new available session for the creator.
func (s *DefaultSessionService) CreateSession(ctx context.Context, creatorID string, in CreateInput) (*models.Session, error) {
	start, err := parseStart(in.StartTime)
	if err != nil {
		return nil, err
	}
	if !start.After(s.now()) {
		return nil, fmt.Errorf("%w: session date must be in the future", ErrInvalidInput)
	}

	if in.MaxParticipants == 0 {
		in.MaxParticipants = 1
	}

	session := &models.Session{
		ID:              uuid.New().String(),
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		StartTime:       start,
		Duration:        in.Duration,
		CreatorID:       creatorID,
		Status:          models.SessionAvailable,
		MaxParticipants: in.MaxParticipants,
		Price:           in.Price,
		Tags:            in.Tags,
		MeetingLink:     in.MeetingLink,
		Notes:           in.Notes,
	}
	if session.Tags == nil {
		session.Tags = []string{}
	}

	if err := validateSession(session); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession returns a single session by id.
func (s *DefaultSessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// UpdateSession applies descriptive-field changes. Only the creator may edit,
// and only while the session is still available.
func (s *DefaultSessionService) UpdateSession(ctx context.Context, id, requesterID string, in UpdateInput) (*models.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.CreatorID != requesterID {
		return nil, ErrNotCreator
	}
	if session.Status != models.SessionAvailable {
		return nil, ErrSessionBooked
	}

	if in.Title != nil {
		session.Title = *in.Title
	}
	if in.Description != nil {
		session.Description = *in.Description
	}
	if in.Category != nil {
		session.Category = *in.Category
	}
	if in.StartTime != nil {
		start, err := parseStart(*in.StartTime)
		if err != nil {
			return nil, err
		}
		if !start.After(s.now()) {
			return nil, fmt.Errorf("%w: session date must be in the future", ErrInvalidInput)
		}
		session.StartTime = start
	}
	if in.Duration != nil {
		session.Duration = *in.Duration
	}
	if in.MaxParticipants != nil {
		session.MaxParticipants = *in.MaxParticipants
	}
	if in.Price != nil {
		session.Price = *in.Price
	}
	if in.Tags != nil {
		session.Tags = *in.Tags
	}
	if in.MeetingLink != nil {
		session.MeetingLink = *in.MeetingLink
	}
	if in.Notes != nil {
		session.Notes = *in.Notes
	}

	if err := validateSession(session); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, session); err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// DeleteSession removes an unbooked session. Only the creator may delete.
func (s *DefaultSessionService) DeleteSession(ctx context.Context, id, requesterID string) error {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.CreatorID != requesterID {
		return ErrNotCreator
	}
	if session.Status == models.SessionBooked {
		return ErrSessionBooked
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ListSessions returns available future sessions, soonest first.
func (s *DefaultSessionService) ListSessions(ctx context.Context, q sessionRepo.ListQuery) (*ListPage, error) {
	sessions, total, err := s.Repo.ListAvailable(ctx, q, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return newListPage(sessions, total, q.Page, q.PageSize), nil
}

// ListCreatedSessions returns the creator's sessions, latest first.
func (s *DefaultSessionService) ListCreatedSessions(ctx context.Context, creatorID string, page, pageSize int) (*ListPage, error) {
	sessions, total, err := s.Repo.ListByCreator(ctx, creatorID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list created sessions: %w", err)
	}
	return newListPage(sessions, total, page, pageSize), nil
}

func newListPage(sessions []models.Session, total int64, page, pageSize int) *ListPage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return &ListPage{
		Sessions:   sessions,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Page:       page,
	}
}

func parseStart(value string) (time.Time, error) {
	start, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: startTime must be RFC 3339", ErrInvalidInput)
	}
	return start, nil
}

func validateSession(session *models.Session) error {
	switch {
	case session.Title == "" || len(session.Title) > 100:
		return fmt.Errorf("%w: title is required and cannot exceed 100 characters", ErrInvalidInput)
	case session.Description == "" || len(session.Description) > 1000:
		return fmt.Errorf("%w: description is required and cannot exceed 1000 characters", ErrInvalidInput)
	case !models.IsValidCategory(session.Category):
		return fmt.Errorf("%w: invalid category %q", ErrInvalidInput, session.Category)
	case session.Duration < models.MinSessionDuration || session.Duration > models.MaxSessionDuration:
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, models.MinSessionDuration, models.MaxSessionDuration)
	case session.MaxParticipants < 1 || session.MaxParticipants > models.MaxParticipants:
		return fmt.Errorf("%w: maxParticipants must be between 1 and %d", ErrInvalidInput, models.MaxParticipants)
	case session.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	case len(session.Tags) > models.MaxSessionTags:
		return fmt.Errorf("%w: cannot have more than %d tags", ErrInvalidInput, models.MaxSessionTags)
	case len(session.Notes) > 500:
		return fmt.Errorf("%w: notes cannot exceed 500 characters", ErrInvalidInput)
	}
	return nil
}
