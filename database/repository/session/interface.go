package sessionRepo

import (
	"context"
	"errors"
	"time"

	"sessionbooker/models"
)

// ErrNotFound is returned when no session matches the given id.
var ErrNotFound = errors.New("session not found")

// ListQuery narrows ListAvailable results.
type ListQuery struct {
	Category models.SessionCategory // empty means any
	Search   string                 // case-insensitive match over title, description, tags
	Page     int
	PageSize int
}

// SessionRepository defines data access for sessions.
//
// CompareAndSetStatus is the linearization point for the booking lifecycle: it
// must be atomic with respect to other conditional updates on the same id. A
// status mismatch is a normal outcome reported as (false, nil), not an error.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetManyByIDs(ctx context.Context, ids []string) (map[string]*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error

	CompareAndSetStatus(ctx context.Context, id string, old, new models.SessionStatus) (bool, error)

	// ListAvailable returns available sessions starting after the given instant,
	// soonest first, with the total count before pagination.
	ListAvailable(ctx context.Context, q ListQuery, afterStart time.Time) ([]models.Session, int64, error)
	ListByCreator(ctx context.Context, creatorID string, page, pageSize int) ([]models.Session, int64, error)
}
