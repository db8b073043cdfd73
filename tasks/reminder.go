package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"sessionbooker/models"
)

const TypeSessionReminder = "reminder:session"

// ReminderPayload identifies the booking a reminder belongs to.
type ReminderPayload struct {
	BookingID string    `json:"bookingId"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	FireAt    time.Time `json:"fireAt"`
}

// NewSessionReminderTask builds an asynq task that fires at the given instant.
func NewSessionReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues session reminders ahead of the session start.
// It implements the engine's ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Lead   time.Duration
}

// ScheduleSessionReminder enqueues a reminder to fire Lead before the session
// starts. Sessions starting sooner than that get no reminder.
func (s *AsynqReminderScheduler) ScheduleSessionReminder(booking *models.Booking, session *models.Session) error {
	fireAt := session.StartTime.Add(-s.Lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := ReminderPayload{
		BookingID: booking.ID,
		SessionID: session.ID,
		UserID:    booking.UserID,
		FireAt:    fireAt,
	}
	task, opts, err := NewSessionReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}
