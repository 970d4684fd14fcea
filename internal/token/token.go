// Package token issues and verifies the bearer tokens used by every
// authenticated endpoint. Tokens are HS256-signed JWTs carrying the caller's
// id, email and role, valid for seven days, keyed by a process-wide secret.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL defines how long issued tokens remain valid
const TokenTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken is returned when a token fails verification
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingToken is returned when no bearer token was provided
	ErrMissingToken = errors.New("no token provided")
)

// Payload is the identity carried by a verified token
type Payload struct {
	UserID string
	Email  string
	Role   string
}

// Signer issues and verifies tokens with a shared secret
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner creates a Signer from the given secret. The secret must be
// configured once at startup; an empty secret is a programming error.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	return &Signer{secret: []byte(secret), now: time.Now}, nil
}

// Generate issues a signed token for the given identity
func (s *Signer) Generate(userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"role":   role,
		"exp":    s.now().Add(TokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string, returning the identity it
// carries. Any parse, signature or expiry failure yields ErrInvalidToken.
func (s *Signer) Verify(tokenString string) (*Payload, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	payload := &Payload{}
	if payload.UserID, ok = claims["userId"].(string); !ok {
		return nil, ErrInvalidToken
	}
	if payload.Email, ok = claims["email"].(string); !ok {
		return nil, ErrInvalidToken
	}
	if payload.Role, ok = claims["role"].(string); !ok {
		return nil, ErrInvalidToken
	}

	return payload, nil
}

// FromHeader extracts the identity from an Authorization header value.
// Both "Bearer <token>" and a bare token are accepted, matching what the
// web client sends.
func (s *Signer) FromHeader(header string) (*Payload, error) {
	if header == "" {
		return nil, ErrMissingToken
	}

	return s.Verify(strings.TrimPrefix(header, "Bearer "))
}
