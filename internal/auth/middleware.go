package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/token"
	"worktrack/internal/users"
)

// RequireAuth validates the bearer token and injects the caller's identity
// into the gin context. Requests without a valid token never reach the
// handler.
func RequireAuth(signer *token.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := signer.FromHeader(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, token.ErrMissingToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserID, payload.UserID)
		c.Set(ContextEmail, payload.Email)
		c.Set(ContextRole, payload.Role)

		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(users.RoleAdmin)
}

// RequireFreelancer rejects callers whose token does not carry the
// freelancer role. Must run after RequireAuth.
func RequireFreelancer() gin.HandlerFunc {
	return requireRole(users.RoleFreelancer)
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
