package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sessionRepo "sessionbooker/database/repository/session"
	"sessionbooker/middleware"
	"sessionbooker/models"
	"sessionbooker/services/session"
)

// SessionHandler exposes session CRUD over HTTP.
type SessionHandler struct {
	Service session.SessionService
	Logger  *zap.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc session.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Service: svc, Logger: logger}
}

func (h *SessionHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Session not found"})
	case errors.Is(err, session.ErrNotCreator):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, session.ErrSessionBooked):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, session.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		h.Logger.Error("session operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

// CreateSession handles POST /api/sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var input session.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.CreateSession(c.Request.Context(), middleware.CallerID(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Session created successfully",
		"session": created,
	})
}

// GetSession handles GET /api/sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.Service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": s})
}

// UpdateSession handles PUT /api/sessions/:id.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var input session.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Service.UpdateSession(c.Request.Context(), c.Param("id"), middleware.CallerID(c), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Session updated successfully",
		"session": updated,
	})
}

// DeleteSession handles DELETE /api/sessions/:id.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.Service.DeleteSession(c.Request.Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session deleted successfully"})
}

// ListSessions handles GET /api/sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var query struct {
		Category string `form:"category"`
		Search   string `form:"search"`
		Page     int    `form:"page,default=1"`
		PageSize int    `form:"limit,default=10"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid query", "details": err.Error()})
		return
	}

	page, err := h.Service.ListSessions(c.Request.Context(), sessionRepo.ListQuery{
		Category: models.SessionCategory(query.Category),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(page.Sessions),
		"total":       page.Total,
		"totalPages":  page.TotalPages,
		"currentPage": page.Page,
		"sessions":    page.Sessions,
	})
}

// ListMyCreatedSessions handles GET /api/sessions/creator/me.
func (h *SessionHandler) ListMyCreatedSessions(c *gin.Context) {
	var query struct {
		Page     int `form:"page,default=1"`
		PageSize int `form:"limit,default=10"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid query", "details": err.Error()})
		return
	}

	page, err := h.Service.ListCreatedSessions(c.Request.Context(), middleware.CallerID(c), query.Page, query.PageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       len(page.Sessions),
		"total":       page.Total,
		"totalPages":  page.TotalPages,
		"currentPage": page.Page,
		"sessions":    page.Sessions,
	})
}
