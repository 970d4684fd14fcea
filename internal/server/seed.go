package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// seedHandler handles POST /seed. Registered only when ENABLE_SEED=true;
// it bootstraps the demo admin and freelancer accounts.
func (s *Server) seedHandler(c *gin.Context) {
	if err := s.users.SeedDemoUsers(c.Request.Context()); err != nil {
		slog.Error("Failed to seed demo users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Demo users created successfully"})
}
