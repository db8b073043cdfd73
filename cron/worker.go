package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"sessionbooker/config"
	bookingRepo "sessionbooker/database/repository/booking"
	sessionRepo "sessionbooker/database/repository/session"
	userRepo "sessionbooker/database/repository/user"
	"sessionbooker/models"
	"sessionbooker/services/notification"
	"sessionbooker/tasks"
	"sessionbooker/utils"
)

// ReminderWorker consumes scheduled session reminders.
type ReminderWorker struct {
	Bookings bookingRepo.BookingRepository
	Sessions sessionRepo.SessionRepository
	Users    userRepo.UserRepository
	Notifier notification.Service
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(w *ReminderWorker) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, w.handleReminderTask)

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask sends the reminder for a still-confirmed booking and
// marks it delivered. Cancelled bookings and already-sent reminders are
// dropped silently.
func (w *ReminderWorker) handleReminderTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p tasks.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid reminder payload", zap.Error(err))
		return err
	}

	booking, err := w.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		logger.Warn("reminder target booking not found", zap.String("bookingId", p.BookingID), zap.Error(err))
		return nil
	}
	if booking.Status != models.BookingConfirmed || booking.ReminderSent {
		return nil
	}

	session, err := w.Sessions.GetByID(ctx, booking.SessionID)
	if err != nil {
		logger.Warn("reminder target session not found", zap.String("sessionId", booking.SessionID), zap.Error(err))
		return nil
	}
	user, err := w.Users.GetByID(ctx, booking.UserID)
	if err != nil {
		logger.Warn("reminder target user not found", zap.String("userId", booking.UserID), zap.Error(err))
		return nil
	}

	if err := w.Notifier.SendSessionReminder(ctx, booking, session, user); err != nil {
		logger.Warn("failed to send session reminder", zap.String("bookingId", booking.ID), zap.Error(err))
		return err
	}

	if err := w.Bookings.SetReminderSent(ctx, booking.ID); err != nil {
		logger.Warn("failed to mark reminder sent", zap.String("bookingId", booking.ID), zap.Error(err))
	}
	return nil
}
