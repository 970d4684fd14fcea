// Package users implements account management: freelancer CRUD for admins
// and the lifetime statistics shown on the admin dashboard. Passwords are
// bcrypt-hashed before they reach the repository.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Service defines the users service interface
type Service interface {
	CreateFreelancer(ctx context.Context, req CreateFreelancerRequest) (*User, error)
	ListFreelancersWithStats(ctx context.Context) ([]FreelancerWithStats, error)
	UpdateFreelancer(ctx context.Context, id string, req UpdateFreelancerRequest) (*User, error)
	DeleteFreelancer(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CheckPassword(u *User, password string) bool
	SeedDemoUsers(ctx context.Context) error
}

type service struct {
	repo *Repository
}

// NewService creates a new users service
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

// CreateFreelancer registers a new freelancer account. The role is always
// freelancer; admins are provisioned out of band.
func (s *service) CreateFreelancer(ctx context.Context, req CreateFreelancerRequest) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rate := float64(DefaultHourlyRate)
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	u := &User{
		Email:      strings.ToLower(req.Email),
		Password:   string(hashed),
		Name:       req.Name,
		Role:       RoleFreelancer,
		HourlyRate: rate,
		Skills:     req.Skills,
		IsActive:   true,
	}

	return s.repo.Create(ctx, u)
}

func (s *service) ListFreelancersWithStats(ctx context.Context) ([]FreelancerWithStats, error) {
	return s.repo.ListFreelancersWithStats(ctx)
}

// UpdateFreelancer applies a field-level update. A new password is hashed
// here so the repository only ever sees bcrypt digests.
func (s *service) UpdateFreelancer(ctx context.Context, id string, req UpdateFreelancerRequest) (*User, error) {
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hashed)
		req.Password = &h
	}
	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		req.Email = &lowered
	}

	return s.repo.Update(ctx, id, req)
}

func (s *service) DeleteFreelancer(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// CheckPassword compares a candidate password against the stored hash
func (s *service) CheckPassword(u *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// SeedDemoUsers creates the demo admin and freelancer accounts if they do
// not already exist. Only reachable when seeding is explicitly enabled.
func (s *service) SeedDemoUsers(ctx context.Context) error {
	demo := []User{
		{
			Email:      "admin@demo.com",
			Password:   "admin123",
			Name:       "Admin User",
			Role:       RoleAdmin,
			HourlyRate: DefaultHourlyRate,
			IsActive:   true,
		},
		{
			Email:      "freelancer@demo.com",
			Password:   "freelancer123",
			Name:       "John Freelancer",
			Role:       RoleFreelancer,
			HourlyRate: 30,
			Skills:     []string{"React", "Node.js", "PostgreSQL"},
			IsActive:   true,
		},
	}

	for _, u := range demo {
		if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
			continue
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		u.Password = string(hashed)

		if _, err := s.repo.Create(ctx, &u); err != nil {
			return err
		}
	}

	return nil
}
