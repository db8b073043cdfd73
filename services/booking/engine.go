package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "sessionbooker/database/repository/booking"
	sessionRepo "sessionbooker/database/repository/session"
	"sessionbooker/models"
)

// CreateBooking reserves the session for the user. Preconditions are checked
// in order, each with a distinct outcome; the atomic insert-plus-flip in the
// store decides any race the checks could not see.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, sessionID, userID, notes string) (*models.BookingDetail, error) {
	session, err := s.fetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now().Now()

	if session.Status != models.SessionAvailable {
		return nil, conflict(CodeSessionNotAvailable, "session is not available for booking")
	}
	if !session.StartTime.After(now) {
		return nil, invalidState(CodeSessionInPast, "cannot book sessions in the past")
	}
	if session.CreatorID == userID {
		return nil, forbidden(CodeSelfBooking, "you cannot book your own session")
	}

	if err := s.checkNoActiveBooking(ctx, sessionID, userID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		UserID:    userID,
		Notes:     notes,
	}

	err = s.withRetry(ctx, "create booking", func() error {
		return s.Bookings.CreateConfirmed(ctx, booking)
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrDuplicate):
			return nil, conflict(CodeAlreadyBooked, "you have already booked this session")
		case errors.Is(err, bookingRepo.ErrSessionNotAvailable):
			return nil, conflict(CodeSessionNotAvailable, "session is not available for booking")
		default:
			return nil, err
		}
	}

	// Committed. Everything below is best-effort display and side effects.
	session.Status = models.SessionBooked
	user := s.resolveUser(ctx, userID)

	s.dispatch(eventBookingCreated, booking, session, user)

	return s.detail(booking, session, user), nil
}

// CancelBooking cancels the caller's confirmed booking, provided the session
// starts strictly more than the cancellation window from now, and atomically
// reverts the session to available.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, userID, reason string) (*models.BookingDetail, error) {
	booking, err := s.fetchBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, forbidden(CodeNotOwner, "not authorized to cancel this booking")
	}
	if booking.Status != models.BookingConfirmed {
		return nil, invalidState(CodeNotCancellable, "only confirmed bookings can be cancelled")
	}

	session, err := s.fetchSession(ctx, booking.SessionID)
	if err != nil {
		return nil, err
	}

	now := s.now().Now()
	if session.StartTime.Sub(now) <= models.CancellationWindow {
		return nil, invalidState(CodeWindowClosed,
			fmt.Sprintf("cannot cancel a booking less than %v before the session", models.CancellationWindow))
	}

	var cancelled *models.Booking
	err = s.withRetry(ctx, "cancel booking", func() error {
		var cErr error
		cancelled, cErr = s.Bookings.CancelConfirmed(ctx, bookingID, reason, now)
		return cErr
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotCancellable) {
			return nil, invalidState(CodeNotCancellable, "only confirmed bookings can be cancelled")
		}
		return nil, err
	}

	session.Status = models.SessionAvailable
	user := s.resolveUser(ctx, userID)

	s.dispatch(eventBookingCancelled, cancelled, session, user)

	return s.detail(cancelled, session, user), nil
}

// GetBooking returns the booking with session and user resolved. Only the
// booking's user or the session's creator may view it.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID, requesterID string) (*models.BookingDetail, error) {
	booking, err := s.fetchBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	session, err := s.fetchSession(ctx, booking.SessionID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requesterID && session.CreatorID != requesterID {
		return nil, forbidden(CodeNotAuthorized, "not authorized to view this booking")
	}

	return s.detail(booking, session, s.resolveUser(ctx, booking.UserID)), nil
}

// ListBookingsForUser returns a page of the user's bookings, newest first,
// partitioned into upcoming and past. The partition is recomputed from status
// and clock on every read, never stored.
func (s *DefaultBookingService) ListBookingsForUser(ctx context.Context, userID string, status models.BookingStatus, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var (
		bookings []models.Booking
		total    int64
	)
	err := s.withRetry(ctx, "query bookings", func() error {
		var qErr error
		bookings, total, qErr = s.Bookings.QueryByUser(ctx, userID, bookingRepo.UserQuery{
			Status:   status,
			Page:     page,
			PageSize: pageSize,
		})
		return qErr
	})
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]string, 0, len(bookings))
	for i := range bookings {
		sessionIDs = append(sessionIDs, bookings[i].SessionID)
	}

	var sessions map[string]*models.Session
	err = s.withRetry(ctx, "resolve sessions", func() error {
		var qErr error
		sessions, qErr = s.Sessions.GetManyByIDs(ctx, sessionIDs)
		return qErr
	})
	if err != nil {
		return nil, err
	}

	now := s.now().Now()
	result := &ListResult{
		Upcoming:   []models.BookingDetail{},
		Past:       []models.BookingDetail{},
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Page:       page,
	}

	for i := range bookings {
		b := &bookings[i]
		session := sessions[b.SessionID]

		d := models.BookingDetail{Booking: *b, Session: session}
		if session != nil {
			d.CanBeCancelled = b.CanBeCancelled(session.StartTime, now)
		}

		if session != nil && b.IsUpcoming(session.StartTime, now) {
			result.Upcoming = append(result.Upcoming, d)
		} else {
			result.Past = append(result.Past, d)
		}
	}

	return result, nil
}

func (s *DefaultBookingService) fetchSession(ctx context.Context, id string) (*models.Session, error) {
	var session *models.Session
	err := s.withRetry(ctx, "fetch session", func() error {
		var fErr error
		session, fErr = s.Sessions.GetByID(ctx, id)
		return fErr
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, notFound(CodeSessionNotFound, "session not found")
		}
		return nil, err
	}
	return session, nil
}

func (s *DefaultBookingService) fetchBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking *models.Booking
	err := s.withRetry(ctx, "fetch booking", func() error {
		var fErr error
		booking, fErr = s.Bookings.GetByID(ctx, id)
		return fErr
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, notFound(CodeBookingNotFound, "booking not found")
		}
		return nil, err
	}
	return booking, nil
}

// checkNoActiveBooking is the fail-fast duplicate check. The partial unique
// index in the store remains the authority if a concurrent insert slips past.
func (s *DefaultBookingService) checkNoActiveBooking(ctx context.Context, sessionID, userID string) error {
	var findErr error
	err := s.withRetry(ctx, "check active booking", func() error {
		_, findErr = s.Bookings.FindActive(ctx, sessionID, userID)
		return findErr
	})
	if err == nil {
		return conflict(CodeAlreadyBooked, "you have already booked this session")
	}
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil
	}
	return err
}

// resolveUser fetches the user for display. The transition has already
// committed when this runs, so a lookup failure is logged, never surfaced.
func (s *DefaultBookingService) resolveUser(ctx context.Context, id string) *models.User {
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		s.logger().Warn("failed to resolve user for booking detail",
			zap.String("userId", id),
			zap.Error(err),
		)
		return nil
	}
	return user
}

func (s *DefaultBookingService) detail(b *models.Booking, session *models.Session, user *models.User) *models.BookingDetail {
	d := &models.BookingDetail{Booking: *b, Session: session}
	if user != nil {
		d.User = user.Profile()
	}
	if session != nil {
		d.CanBeCancelled = b.CanBeCancelled(session.StartTime, s.now().Now())
	}
	return d
}
