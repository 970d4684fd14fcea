package analytics

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/auth"
)

// Handler handles analytics HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new analytics handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Report handles GET /analytics?period=
func (h *Handler) Report(c *gin.Context) {
	period := c.DefaultQuery("period", DefaultPeriod)

	report, err := h.service.Report(
		c.Request.Context(),
		c.GetString(auth.ContextUserID),
		c.GetString(auth.ContextRole),
		period,
	)
	if err != nil {
		slog.Error("Failed to build analytics report", "period", period, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, report)
}
