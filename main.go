package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"sessionbooker/config"
	"sessionbooker/cron"
	"sessionbooker/database"
	bookingRepoPkg "sessionbooker/database/repository/booking"
	sessionRepoPkg "sessionbooker/database/repository/session"
	userRepoPkg "sessionbooker/database/repository/user"
	"sessionbooker/handlers"
	"sessionbooker/middleware"
	"sessionbooker/routes"
	"sessionbooker/services/booking"
	"sessionbooker/services/notification"
	"sessionbooker/services/session"
	"sessionbooker/services/user"
	"sessionbooker/tasks"
	"sessionbooker/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessRepo := sessionRepoPkg.NewMongoSessionRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: usrRepo,
	}

	sessionService := &session.DefaultSessionService{
		Repo:  sessRepo,
		Clock: booking.SystemClock(),
	}

	notifier, err := notification.NewFCMNotifier(usrRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	defer reminderClient.Close()

	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client: reminderClient,
		Lead:   time.Duration(config.AppConfig.ReminderLeadMins) * time.Minute,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:  bookRepo,
		Sessions:  sessRepo,
		Users:     usrRepo,
		Clock:     booking.SystemClock(),
		Notifier:  notifier,
		Reminders: reminderScheduler,
		Logger:    logger,
	}

	// Reminder worker consumes the scheduled tasks in background.
	cron.InitReminderWorker(&cron.ReminderWorker{
		Bookings: bookRepo,
		Sessions: sessRepo,
		Users:    usrRepo,
		Notifier: notifier,
	})

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)

	routes.RegisterRoutes(router, bookingHandler, sessionHandler, userHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
