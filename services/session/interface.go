package session

import (
	"context"
	"errors"

	sessionRepo "sessionbooker/database/repository/session"
	"sessionbooker/models"
)

var (
	// ErrNotFound is returned when the session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrNotCreator is returned when the caller does not own the session.
	ErrNotCreator = errors.New("not authorized to modify this session")

	// ErrSessionBooked is returned when a booked session is edited or deleted.
	ErrSessionBooked = errors.New("session is booked and cannot be modified")

	// ErrInvalidInput wraps field validation failures.
	ErrInvalidInput = errors.New("invalid session input")
)

// CreateInput carries the creator-supplied fields of a new session.
type CreateInput struct {
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Category        models.SessionCategory `json:"category"`
	StartTime       string                 `json:"startTime"` // RFC 3339
	Duration        int                    `json:"duration"`
	MaxParticipants int                    `json:"maxParticipants"`
	Price           float64                `json:"price"`
	Tags            []string               `json:"tags"`
	MeetingLink     string                 `json:"meetingLink"`
	Notes           string                 `json:"notes"`
}

// UpdateInput carries optional descriptive-field changes; nil means unchanged.
// Status is deliberately absent: only the lifecycle engine writes status.
type UpdateInput struct {
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	Category        *models.SessionCategory `json:"category"`
	StartTime       *string                 `json:"startTime"`
	Duration        *int                    `json:"duration"`
	MaxParticipants *int                    `json:"maxParticipants"`
	Price           *float64                `json:"price"`
	Tags            *[]string               `json:"tags"`
	MeetingLink     *string                 `json:"meetingLink"`
	Notes           *string                 `json:"notes"`
}

// ListPage is a page of sessions plus pagination totals.
type ListPage struct {
	Sessions   []models.Session `json:"sessions"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"totalPages"`
	Page       int              `json:"currentPage"`
}

// SessionService manages sessions on behalf of their creators. It never
// touches Status beyond the initial available; status belongs to the engine.
type SessionService interface {
	CreateSession(ctx context.Context, creatorID string, in CreateInput) (*models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateSession(ctx context.Context, id, requesterID string, in UpdateInput) (*models.Session, error)
	DeleteSession(ctx context.Context, id, requesterID string) error
	ListSessions(ctx context.Context, q sessionRepo.ListQuery) (*ListPage, error)
	ListCreatedSessions(ctx context.Context, creatorID string, page, pageSize int) (*ListPage, error)
}
