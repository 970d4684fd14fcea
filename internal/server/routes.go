package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"worktrack/internal/auth"
	"worktrack/internal/metrics"
)

// RegisterRoutes builds the gin engine with all middleware and endpoints
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", metrics.Handler())

	if s.seedEnabled {
		r.POST("/seed", s.seedHandler)
	}

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/login", s.authHandler.Login)
		authRoutes.GET("/verify", auth.RequireAuth(s.signer), s.authHandler.VerifyToken)
	}

	r.GET("/analytics", auth.RequireAuth(s.signer), s.analyticsHandler.Report)

	freelancers := r.Group("/freelancers")
	freelancers.Use(auth.RequireAuth(s.signer), auth.RequireAdmin())
	{
		freelancers.GET("", s.usersHandler.ListFreelancers)
		freelancers.POST("", s.usersHandler.CreateFreelancer)
		freelancers.PUT("/:id", s.usersHandler.UpdateFreelancer)
		freelancers.DELETE("/:id", s.usersHandler.DeleteFreelancer)
	}

	workSessions := r.Group("/work-sessions")
	workSessions.Use(auth.RequireAuth(s.signer))
	{
		workSessions.GET("", s.sessionsHandler.List)
		workSessions.POST("", auth.RequireFreelancer(), s.sessionsHandler.Start)
		workSessions.POST("/:id/stop", s.sessionsHandler.Stop)
	}

	files := r.Group("/files")
	files.Use(auth.RequireAuth(s.signer))
	{
		files.POST("/upload-url", s.uploadURLHandler)
		files.POST("/download-url", s.downloadURLHandler)
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]interface{})
	response["database"] = s.db.Health()

	if s.storage != nil {
		storageHealth := make(map[string]string)
		if err := s.storage.Health(c.Request.Context()); err != nil {
			storageHealth["status"] = "down"
			storageHealth["error"] = err.Error()
		} else {
			storageHealth["status"] = "up"
		}
		response["storage"] = storageHealth
	}

	c.JSON(http.StatusOK, response)
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
