package booking

import (
	"context"

	"go.uber.org/zap"

	bookingRepo "sessionbooker/database/repository/booking"
	sessionRepo "sessionbooker/database/repository/session"
	userRepo "sessionbooker/database/repository/user"
	"sessionbooker/models"
	"sessionbooker/services/notification"
)

// ListResult is a page of a user's bookings, partitioned at read time.
type ListResult struct {
	Upcoming   []models.BookingDetail `json:"upcoming"`
	Past       []models.BookingDetail `json:"past"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"totalPages"`
	Page       int                    `json:"currentPage"`
}

// BookingService is the booking lifecycle engine. It owns the rules and
// ordering of state transitions; atomicity is delegated to the store.
type BookingService interface {
	CreateBooking(ctx context.Context, sessionID, userID, notes string) (*models.BookingDetail, error)
	CancelBooking(ctx context.Context, bookingID, userID, reason string) (*models.BookingDetail, error)
	GetBooking(ctx context.Context, bookingID, requesterID string) (*models.BookingDetail, error)
	ListBookingsForUser(ctx context.Context, userID string, status models.BookingStatus, page, pageSize int) (*ListResult, error)
}

// ReminderScheduler enqueues a session reminder to fire before the session
// starts. Scheduling failures are logged and absorbed like notifier failures.
type ReminderScheduler interface {
	ScheduleSessionReminder(booking *models.Booking, session *models.Session) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Sessions  sessionRepo.SessionRepository
	Users     userRepo.UserRepository
	Clock     Clock
	Notifier  notification.Service
	Reminders ReminderScheduler // optional
	Logger    *zap.Logger
}

func (s *DefaultBookingService) now() Clock {
	if s.Clock == nil {
		return SystemClock()
	}
	return s.Clock
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
