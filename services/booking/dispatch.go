package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"sessionbooker/models"
)

type eventKind string

const (
	eventBookingCreated   eventKind = "BookingCreated"
	eventBookingCancelled eventKind = "BookingCancelled"
)

const dispatchTimeout = 10 * time.Second

// dispatch hands a committed lifecycle event to the notifier on a detached
// goroutine. It runs strictly after the transactional unit has committed and
// holds no lock or transaction; delivery failures are logged and absorbed
// because the booking outcome is already decided.
func (s *DefaultBookingService) dispatch(kind eventKind, booking *models.Booking, session *models.Session, user *models.User) {
	if s.Notifier != nil && user != nil {
		b, sess, u := *booking, *session, *user
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
			defer cancel()

			var err error
			switch kind {
			case eventBookingCreated:
				err = s.Notifier.SendBookingConfirmation(ctx, &b, &sess, &u)
			case eventBookingCancelled:
				err = s.Notifier.SendBookingCancellation(ctx, &b, &sess, &u)
			}
			if err != nil {
				s.logger().Warn("notification delivery failed",
					zap.String("event", string(kind)),
					zap.String("bookingId", b.ID),
					zap.Error(err),
				)
			}
		}()
	}

	if kind == eventBookingCreated && s.Reminders != nil {
		if err := s.Reminders.ScheduleSessionReminder(booking, session); err != nil {
			s.logger().Warn("failed to schedule session reminder",
				zap.String("bookingId", booking.ID),
				zap.Error(err),
			)
		}
	}
}
