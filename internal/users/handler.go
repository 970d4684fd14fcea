package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles freelancer management HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new users handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListFreelancers handles GET /freelancers (admin only)
func (h *Handler) ListFreelancers(c *gin.Context) {
	freelancers, err := h.service.ListFreelancersWithStats(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list freelancers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, freelancers)
}

// CreateFreelancer handles POST /freelancers (admin only)
func (h *Handler) CreateFreelancer(c *gin.Context) {
	var req CreateFreelancerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and name are required"})
		return
	}

	u, err := h.service.CreateFreelancer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		slog.Error("Failed to create freelancer", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// UpdateFreelancer handles PUT /freelancers/:id (admin only)
func (h *Handler) UpdateFreelancer(c *gin.Context) {
	id := c.Param("id")

	var req UpdateFreelancerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.service.UpdateFreelancer(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Freelancer not found"})
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		default:
			slog.Error("Failed to update freelancer", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, u)
}

// DeleteFreelancer handles DELETE /freelancers/:id (admin only)
func (h *Handler) DeleteFreelancer(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteFreelancer(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Freelancer not found"})
			return
		}
		slog.Error("Failed to delete freelancer", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Freelancer deleted successfully"})
}
