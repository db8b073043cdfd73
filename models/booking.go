package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no-show"
)

// ActiveBookingStatuses are the statuses that count toward the one-active-booking
// uniqueness constraint on a (session, user) pair.
var ActiveBookingStatuses = []BookingStatus{BookingConfirmed, BookingCompleted}

const (
	MaxBookingNotesLen       = 500
	MaxCancellationReasonLen = 200

	// CancellationWindow is the period before a session's start during which
	// cancellation is no longer allowed. The boundary is exclusive: cancellation
	// requires strictly more than this much lead time.
	CancellationWindow = 2 * time.Hour
)

// Booking represents a user's reservation against exactly one session.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	SessionID          string        `bson:"session_id" json:"sessionId"`
	UserID             string        `bson:"user_id" json:"userId"`
	Status             BookingStatus `bson:"status" json:"status"`
	Notes              string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string        `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time    `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	ReminderSent       bool          `bson:"reminder_sent" json:"reminderSent"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`
}

// IsActive reports whether the booking counts as active for uniqueness purposes.
func (b *Booking) IsActive() bool {
	return b.Status == BookingConfirmed || b.Status == BookingCompleted
}

// IsTerminal reports whether no further status-changing operation may act on the booking.
func (b *Booking) IsTerminal() bool {
	return b.Status != BookingConfirmed
}

// CanBeCancelled reports whether the booking may still be cancelled given its
// session's start instant. Recomputed on every read, never stored.
func (b *Booking) CanBeCancelled(sessionStart, now time.Time) bool {
	if b.Status != BookingConfirmed {
		return false
	}
	return sessionStart.Sub(now) > CancellationWindow
}

// IsUpcoming reports whether the booking should be presented as upcoming:
// the session starts strictly after now and the booking is still confirmed.
func (b *Booking) IsUpcoming(sessionStart, now time.Time) bool {
	return b.Status == BookingConfirmed && sessionStart.After(now)
}

// BookingDetail is a booking with its session and user resolved for display.
type BookingDetail struct {
	Booking
	Session *Session     `json:"session,omitempty"`
	User    *UserProfile `json:"user,omitempty"`

	// CanBeCancelled is recomputed at read time from status and clock.
	CanBeCancelled bool `json:"canBeCancelled"`
}
