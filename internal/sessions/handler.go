package sessions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/auth"
)

// Handler handles work-session HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new sessions handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /work-sessions?freelancer=&status=
func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		FreelancerID: c.Query("freelancer"),
		Status:       c.Query("status"),
	}

	result, err := h.service.List(
		c.Request.Context(),
		c.GetString(auth.ContextUserID),
		c.GetString(auth.ContextRole),
		filter,
	)
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Start handles POST /work-sessions (freelancer role required by the route)
func (h *Handler) Start(c *gin.Context) {
	var req StartSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sess, err := h.service.Start(c.Request.Context(), c.GetString(auth.ContextUserID), req)
	if err != nil {
		if errors.Is(err, ErrActiveSessionExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Active session already exists"})
			return
		}
		slog.Error("Failed to start session", "freelancer", c.GetString(auth.ContextUserID), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Stop handles POST /work-sessions/:id/stop
func (h *Handler) Stop(c *gin.Context) {
	id := c.Param("id")

	sess, err := h.service.Stop(
		c.Request.Context(),
		id,
		c.GetString(auth.ContextUserID),
		c.GetString(auth.ContextRole),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, ErrNotSessionOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, ErrSessionNotActive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Session is not active"})
		default:
			slog.Error("Failed to stop session", "session_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, sess)
}
