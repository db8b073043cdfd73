package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	userRepo "sessionbooker/database/repository/user"
	"sessionbooker/models"
	"sessionbooker/utils"
)

// FCMNotifier is the production implementation, delivering pushes over
// Firebase Cloud Messaging to the booking user and the session creator.
type FCMNotifier struct {
	Users userRepo.UserRepository
}

// NewFCMNotifier creates a notifier backed by the global FCM client.
func NewFCMNotifier(users userRepo.UserRepository) (*FCMNotifier, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &FCMNotifier{Users: users}, nil
}

func (n *FCMNotifier) SendBookingConfirmation(ctx context.Context, booking *models.Booking, session *models.Session, user *models.User) error {
	title := "Booking confirmed"
	body := fmt.Sprintf("You're booked for %q on %s.", session.Title, session.StartTime.Format("Mon, Jan 2 at 15:04"))
	if err := n.push(ctx, user, title, body, eventData("booking_confirmed", booking)); err != nil {
		return err
	}

	creatorBody := fmt.Sprintf("%s booked your session %q.", user.Name, session.Title)
	return n.pushToUserID(ctx, session.CreatorID, "Your session was booked", creatorBody, eventData("booking_confirmed", booking))
}

func (n *FCMNotifier) SendBookingCancellation(ctx context.Context, booking *models.Booking, session *models.Session, user *models.User) error {
	title := "Booking cancelled"
	body := fmt.Sprintf("Your booking for %q has been cancelled.", session.Title)
	if err := n.push(ctx, user, title, body, eventData("booking_cancelled", booking)); err != nil {
		return err
	}

	creatorBody := fmt.Sprintf("%s cancelled their booking for %q. The slot is available again.", user.Name, session.Title)
	return n.pushToUserID(ctx, session.CreatorID, "A booking was cancelled", creatorBody, eventData("booking_cancelled", booking))
}

func (n *FCMNotifier) SendSessionReminder(ctx context.Context, booking *models.Booking, session *models.Session, user *models.User) error {
	title := "Session starting soon"
	body := fmt.Sprintf("%q starts at %s.", session.Title, session.StartTime.Format("15:04"))
	return n.push(ctx, user, title, body, eventData("session_reminder", booking))
}

func (n *FCMNotifier) pushToUserID(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := n.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("notification: could not resolve user %s: %w", userID, err)
	}
	return n.push(ctx, u, title, body, data)
}

func (n *FCMNotifier) push(ctx context.Context, user *models.User, title, body string, data map[string]string) error {
	if user.FCMToken == "" {
		return fmt.Errorf("notification: user %s has no FCM token", user.ID)
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("notification: failed to send FCM message: %w", err)
	}
	return nil
}

func eventData(kind string, booking *models.Booking) map[string]string {
	return map[string]string{
		"type":      kind,
		"bookingId": booking.ID,
		"sessionId": booking.SessionID,
	}
}
