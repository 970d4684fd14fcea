package auth

import "worktrack/internal/users"

// LoginRequest is the request payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response after successful authentication
type LoginResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

// Context keys set by the auth middleware
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)
