// Package auth implements credential-based authentication: email/password
// login that issues a signed bearer token, token verification, and the gin
// middleware guarding every authenticated route.
package auth

import (
	"context"
	"errors"

	"worktrack/internal/token"
	"worktrack/internal/users"
)

var (
	// ErrInvalidCredentials is returned when the password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service defines the authentication service interface
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Verify(ctx context.Context, userID string) (*users.User, error)
}

type service struct {
	users  users.Service
	signer *token.Signer
}

// NewService creates a new authentication service
func NewService(usersService users.Service, signer *token.Signer) Service {
	return &service{users: usersService, signer: signer}
}

// Login checks the credentials and issues a 7-day bearer token.
// An unknown email surfaces as users.ErrUserNotFound so the handler can
// distinguish it from a wrong password, matching the API contract.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !s.users.CheckPassword(u, password) {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.signer.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: signed, User: u}, nil
}

// Verify resolves the user behind an already-verified token payload. It
// fails with users.ErrUserNotFound when the account was deleted after the
// token was issued.
func (s *service) Verify(ctx context.Context, userID string) (*users.User, error) {
	return s.users.GetByID(ctx, userID)
}
