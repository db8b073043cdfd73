package notification

import (
	"context"

	"sessionbooker/models"
)

// Service delivers lifecycle notifications. Callers invoke it asynchronously,
// strictly after the lifecycle transition has committed; a delivery failure
// must never surface to the booking caller.
type Service interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking, session *models.Session, user *models.User) error
	SendBookingCancellation(ctx context.Context, booking *models.Booking, session *models.Session, user *models.User) error
	SendSessionReminder(ctx context.Context, booking *models.Booking, session *models.Session, user *models.User) error
}
