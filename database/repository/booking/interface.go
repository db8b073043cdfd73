package bookingRepo

import (
	"context"
	"errors"
	"time"

	"sessionbooker/models"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")

	// ErrDuplicate is returned when an insert loses the uniqueness race on the
	// active (session, user) pair.
	ErrDuplicate = errors.New("active booking already exists for session and user")

	// ErrSessionNotAvailable is returned when the conditional session flip to
	// booked matches nothing; the whole transaction is rolled back.
	ErrSessionNotAvailable = errors.New("session is not available")

	// ErrNotCancellable is returned when the guarded cancel update matches
	// nothing because the booking is no longer confirmed, or the session flip
	// back to available matches nothing.
	ErrNotCancellable = errors.New("booking is not in a cancellable state")
)

// UserQuery narrows and pages QueryByUser results.
type UserQuery struct {
	Status   models.BookingStatus // empty means any
	Page     int
	PageSize int
}

// BookingRepository defines data access for bookings.
//
// CreateConfirmed and CancelConfirmed are the two cross-entity transitions of
// the lifecycle; each runs as a single transactional unit covering the booking
// write and the conditional session status flip, so the store, not the caller,
// is the linearization point.
type BookingRepository interface {
	// CreateConfirmed inserts the booking with status confirmed and atomically
	// flips its session from available to booked. Exactly one of two concurrent
	// calls for the same session observes success; the loser gets
	// ErrSessionNotAvailable (or ErrDuplicate for the same user) and no booking
	// row survives.
	CreateConfirmed(ctx context.Context, booking *models.Booking) error

	// CancelConfirmed sets the booking to cancelled, records the reason and the
	// cancellation instant (exactly once), and atomically flips its session
	// from booked back to available.
	CancelConfirmed(ctx context.Context, bookingID, reason string, at time.Time) (*models.Booking, error)

	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// FindActive returns the confirmed or completed booking for the
	// (session, user) pair, or ErrNotFound.
	FindActive(ctx context.Context, sessionID, userID string) (*models.Booking, error)

	// QueryByUser returns the user's bookings sorted by creation time
	// descending, with the total count before pagination.
	QueryByUser(ctx context.Context, userID string, q UserQuery) ([]models.Booking, int64, error)

	// SetReminderSent marks the reminder as delivered. Idempotent.
	SetReminderSent(ctx context.Context, id string) error
}
