package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sessionbooker/middleware"
	"sessionbooker/models"
	"sessionbooker/services/booking"
)

// BookingHandler exposes the booking lifecycle engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusFromError maps engine error kinds onto HTTP statuses.
func statusFromError(err error) int {
	switch booking.KindOf(err) {
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindForbidden:
		return http.StatusForbidden
	case booking.KindConflict:
		return http.StatusConflict
	case booking.KindInvalidState:
		return http.StatusBadRequest
	case booking.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		h.Logger.Error("booking operation failed", zap.Error(err))
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": err.Error(),
		"code":    booking.CodeOf(err),
	})
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
		Notes     string `json:"notes" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	detail, err := h.Service.CreateBooking(c.Request.Context(), input.SessionID, middleware.CallerID(c), input.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Session booked successfully",
		"booking": detail,
	})
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"max=200"`
	}
	// A missing body means no reason given.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
			return
		}
	}

	detail, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c), input.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"booking": detail,
	})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	detail, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": detail,
	})
}

// GetMyBookings handles GET /api/bookings/me.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	var query struct {
		Status   string `form:"status"`
		Page     int    `form:"page,default=1"`
		PageSize int    `form:"limit,default=10"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid query", "details": err.Error()})
		return
	}

	result, err := h.Service.ListBookingsForUser(
		c.Request.Context(),
		middleware.CallerID(c),
		models.BookingStatus(query.Status),
		query.Page,
		query.PageSize,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"total":       result.Total,
		"totalPages":  result.TotalPages,
		"currentPage": result.Page,
		"bookings": gin.H{
			"upcoming": result.Upcoming,
			"past":     result.Past,
		},
	})
}
