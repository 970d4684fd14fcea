// Package sessions implements the work-session lifecycle: a freelancer
// starts a session (at most one active at a time), stops it later, and the
// stop fixes duration and earnings. Duration counts whole elapsed hours;
// a sub-hour session completes with zero duration and zero earnings.
package sessions

import (
	"context"
	"errors"
	"time"

	"worktrack/internal/users"
)

var (
	// ErrSessionNotActive is returned when stopping a session that is not
	// in the active state
	ErrSessionNotActive = errors.New("session is not active")
	// ErrNotSessionOwner is returned when a non-admin caller tries to stop
	// another freelancer's session
	ErrNotSessionOwner = errors.New("not the session owner")
)

// Store is the subset of repository operations the service depends on
type Store interface {
	Create(ctx context.Context, freelancerID, task, module, description string, startTime time.Time) (*Session, error)
	GetByID(ctx context.Context, id string) (*Session, error)
	FindActiveByFreelancer(ctx context.Context, freelancerID string) (*Session, error)
	List(ctx context.Context, filter ListFilter) ([]Session, error)
	Finish(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error)
}

// UserDirectory resolves freelancer accounts for the stop-time rate lookup
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// Service defines the session lifecycle interface
type Service interface {
	Start(ctx context.Context, freelancerID string, req StartSessionRequest) (*Session, error)
	Stop(ctx context.Context, sessionID, callerID, callerRole string) (*Session, error)
	List(ctx context.Context, callerID, callerRole string, filter ListFilter) ([]Session, error)
}

type service struct {
	store Store
	users UserDirectory
	now   func() time.Time
}

// NewService creates a new session lifecycle service
func NewService(store Store, userDir UserDirectory) Service {
	return &service{store: store, users: userDir, now: time.Now}
}

// Start opens a new active session for the freelancer. It fails with
// ErrActiveSessionExists when one is already running; the check here catches
// the common case and the partial unique index catches concurrent starts.
func (s *service) Start(ctx context.Context, freelancerID string, req StartSessionRequest) (*Session, error) {
	active, err := s.store.FindActiveByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveSessionExists
	}

	task := req.Task
	if task == "" {
		task = DefaultTask
	}
	module := req.Module
	if module == "" {
		module = DefaultModule
	}

	return s.store.Create(ctx, freelancerID, task, module, req.Description, s.now())
}

// Stop finalizes an active session. Duration is the floor of elapsed whole
// hours; earnings use the freelancer's hourly rate as it stands now,
// defaulting to 25 when missing, and are never recomputed afterwards.
func (s *service) Stop(ctx context.Context, sessionID, callerID, callerRole string) (*Session, error) {
	sess, err := s.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if callerRole != users.RoleAdmin && sess.Freelancer.ID != callerID {
		return nil, ErrNotSessionOwner
	}

	if sess.Status != StatusActive {
		return nil, ErrSessionNotActive
	}

	endTime := s.now()
	duration := int(endTime.Sub(sess.StartTime) / time.Hour)

	rate := float64(users.DefaultHourlyRate)
	if freelancer, err := s.users.GetByID(ctx, sess.Freelancer.ID); err == nil && freelancer.HourlyRate > 0 {
		rate = freelancer.HourlyRate
	}
	earnings := float64(duration) * rate

	return s.store.Finish(ctx, sessionID, endTime, duration, earnings)
}

// List returns sessions visible to the caller. Freelancers only ever see
// their own sessions regardless of the requested filter; admins may filter
// by freelancer.
func (s *service) List(ctx context.Context, callerID, callerRole string, filter ListFilter) ([]Session, error) {
	if callerRole == users.RoleFreelancer {
		filter.FreelancerID = callerID
	}

	return s.store.List(ctx, filter)
}
