package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sessionbooker/handlers"
	"sessionbooker/middleware"
	"sessionbooker/utils"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, sessionHandler *handlers.SessionHandler, userHandler *handlers.UserHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Session Booker API is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services":  utils.GetHealthStatus(),
		})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.POST("/logout", middleware.JWTAuthMiddleware(), userHandler.Logout)
	}

	users := r.Group("/api/users", middleware.JWTAuthMiddleware())
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.PUT("/fcm-token", userHandler.UpdateFCMToken)
	}

	sessions := r.Group("/api/sessions")
	{
		sessions.GET("", sessionHandler.ListSessions)
		sessions.GET("/:id", sessionHandler.GetSession)

		authed := sessions.Group("", middleware.JWTAuthMiddleware())
		{
			authed.POST("", sessionHandler.CreateSession)
			authed.PUT("/:id", sessionHandler.UpdateSession)
			authed.DELETE("/:id", sessionHandler.DeleteSession)
			authed.GET("/creator/me", sessionHandler.ListMyCreatedSessions)
		}
	}

	bookings := r.Group("/api/bookings", middleware.JWTAuthMiddleware())
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/me", bookingHandler.GetMyBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.DELETE("/:id", bookingHandler.CancelBooking)
	}
}
