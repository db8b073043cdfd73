package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	bookingRepo "sessionbooker/database/repository/booking"
	sessionRepo "sessionbooker/database/repository/session"
	userRepo "sessionbooker/database/repository/user"
)

const (
	storeRetryAttempts = 3
	storeRetryBackoff  = 50 * time.Millisecond
)

// isDefinitive reports whether the store error is a domain outcome that must
// surface as-is. Everything else is treated as transient and retried.
func isDefinitive(err error) bool {
	return errors.Is(err, bookingRepo.ErrNotFound) ||
		errors.Is(err, bookingRepo.ErrDuplicate) ||
		errors.Is(err, bookingRepo.ErrSessionNotAvailable) ||
		errors.Is(err, bookingRepo.ErrNotCancellable) ||
		errors.Is(err, sessionRepo.ErrNotFound) ||
		errors.Is(err, userRepo.ErrNotFound)
}

// withRetry runs fn up to storeRetryAttempts times, backing off between
// transient failures. Definitive outcomes are returned immediately and never
// retried.
func (s *DefaultBookingService) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= storeRetryAttempts; attempt++ {
		err = fn()
		if err == nil || isDefinitive(err) {
			return err
		}

		s.logger().Warn("store call failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < storeRetryAttempts {
			select {
			case <-ctx.Done():
				return storeUnavailable(ctx.Err())
			case <-time.After(time.Duration(attempt) * storeRetryBackoff):
			}
		}
	}
	return storeUnavailable(err)
}
