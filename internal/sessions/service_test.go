package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"worktrack/internal/users"
)

type mockStore struct {
	createFunc     func(ctx context.Context, freelancerID, task, module, description string, startTime time.Time) (*Session, error)
	getByIDFunc    func(ctx context.Context, id string) (*Session, error)
	findActiveFunc func(ctx context.Context, freelancerID string) (*Session, error)
	listFunc       func(ctx context.Context, filter ListFilter) ([]Session, error)
	finishFunc     func(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error)
}

func (m *mockStore) Create(ctx context.Context, freelancerID, task, module, description string, startTime time.Time) (*Session, error) {
	return m.createFunc(ctx, freelancerID, task, module, description, startTime)
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*Session, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockStore) FindActiveByFreelancer(ctx context.Context, freelancerID string) (*Session, error) {
	return m.findActiveFunc(ctx, freelancerID)
}

func (m *mockStore) List(ctx context.Context, filter ListFilter) ([]Session, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockStore) Finish(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error) {
	return m.finishFunc(ctx, id, endTime, duration, earnings)
}

type mockUserDirectory struct {
	getByIDFunc func(ctx context.Context, id string) (*users.User, error)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id string) (*users.User, error) {
	return m.getByIDFunc(ctx, id)
}

var testClock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(store *mockStore, dir *mockUserDirectory) *service {
	if dir == nil {
		dir = &mockUserDirectory{
			getByIDFunc: func(ctx context.Context, id string) (*users.User, error) {
				return nil, users.ErrUserNotFound
			},
		}
	}
	return &service{store: store, users: dir, now: func() time.Time { return testClock }}
}

func activeSessionAt(freelancerID string, start time.Time) *Session {
	return &Session{
		ID:         "sess-1",
		Freelancer: Freelancer{ID: freelancerID, Name: "Dev", Email: "dev@demo.com", HourlyRate: 30},
		StartTime:  start,
		Status:     StatusActive,
	}
}

func TestStart_ConflictWhenAlreadyActive(t *testing.T) {
	store := &mockStore{
		findActiveFunc: func(ctx context.Context, freelancerID string) (*Session, error) {
			return activeSessionAt(freelancerID, testClock.Add(-time.Hour)), nil
		},
	}

	_, err := newTestService(store, nil).Start(context.Background(), "fl-1", StartSessionRequest{})
	require.ErrorIs(t, err, ErrActiveSessionExists)
}

func TestStart_AppliesDefaults(t *testing.T) {
	store := &mockStore{
		findActiveFunc: func(ctx context.Context, freelancerID string) (*Session, error) {
			return nil, nil
		},
		createFunc: func(ctx context.Context, freelancerID, task, module, description string, startTime time.Time) (*Session, error) {
			require.Equal(t, "fl-1", freelancerID)
			require.Equal(t, DefaultTask, task)
			require.Equal(t, DefaultModule, module)
			require.Empty(t, description)
			require.Equal(t, testClock, startTime)
			return &Session{ID: "sess-1", Task: task, Module: module, Status: StatusActive}, nil
		},
	}

	sess, err := newTestService(store, nil).Start(context.Background(), "fl-1", StartSessionRequest{})
	require.NoError(t, err)
	require.Equal(t, StatusActive, sess.Status)
}

func TestStart_KeepsProvidedFields(t *testing.T) {
	store := &mockStore{
		findActiveFunc: func(ctx context.Context, freelancerID string) (*Session, error) {
			return nil, nil
		},
		createFunc: func(ctx context.Context, freelancerID, task, module, description string, startTime time.Time) (*Session, error) {
			require.Equal(t, "API integration", task)
			require.Equal(t, "Billing", module)
			require.Equal(t, "wire up invoices", description)
			return &Session{ID: "sess-2", Status: StatusActive}, nil
		},
	}

	req := StartSessionRequest{Task: "API integration", Module: "Billing", Description: "wire up invoices"}
	_, err := newTestService(store, nil).Start(context.Background(), "fl-1", req)
	require.NoError(t, err)
}

func TestStop_FloorsDurationToWholeHours(t *testing.T) {
	// 90 minutes elapsed counts as 1 hour
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return activeSessionAt("fl-1", testClock.Add(-90*time.Minute)), nil
		},
		finishFunc: func(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error) {
			require.Equal(t, 1, duration)
			require.Equal(t, 30.0, earnings)
			require.Equal(t, testClock, endTime)
			return &Session{ID: id, Status: StatusCompleted, Duration: duration, Earnings: earnings}, nil
		},
	}
	dir := &mockUserDirectory{
		getByIDFunc: func(ctx context.Context, id string) (*users.User, error) {
			return &users.User{ID: id, HourlyRate: 30}, nil
		},
	}

	sess, err := newTestService(store, dir).Stop(context.Background(), "sess-1", "fl-1", users.RoleFreelancer)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, sess.Status)
}

func TestStop_SubHourSessionEarnsNothing(t *testing.T) {
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return activeSessionAt("fl-1", testClock.Add(-45*time.Minute)), nil
		},
		finishFunc: func(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error) {
			require.Zero(t, duration)
			require.Zero(t, earnings)
			return &Session{ID: id, Status: StatusCompleted}, nil
		},
	}

	_, err := newTestService(store, nil).Stop(context.Background(), "sess-1", "fl-1", users.RoleFreelancer)
	require.NoError(t, err)
}

func TestStop_DefaultRateWhenLookupFails(t *testing.T) {
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return activeSessionAt("fl-1", testClock.Add(-3*time.Hour)), nil
		},
		finishFunc: func(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error) {
			require.Equal(t, 3, duration)
			require.Equal(t, 75.0, earnings) // 3h at the default rate of 25
			return &Session{ID: id, Status: StatusCompleted}, nil
		},
	}

	_, err := newTestService(store, nil).Stop(context.Background(), "sess-1", "fl-1", users.RoleFreelancer)
	require.NoError(t, err)
}

func TestStop_DefaultRateWhenRateNotPositive(t *testing.T) {
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return activeSessionAt("fl-1", testClock.Add(-2*time.Hour)), nil
		},
		finishFunc: func(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error) {
			require.Equal(t, 50.0, earnings)
			return &Session{ID: id, Status: StatusCompleted}, nil
		},
	}
	dir := &mockUserDirectory{
		getByIDFunc: func(ctx context.Context, id string) (*users.User, error) {
			return &users.User{ID: id, HourlyRate: 0}, nil
		},
	}

	_, err := newTestService(store, dir).Stop(context.Background(), "sess-1", "fl-1", users.RoleFreelancer)
	require.NoError(t, err)
}

func TestStop_RejectsDoubleStop(t *testing.T) {
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			sess := activeSessionAt("fl-1", testClock.Add(-2*time.Hour))
			sess.Status = StatusCompleted
			return sess, nil
		},
	}

	_, err := newTestService(store, nil).Stop(context.Background(), "sess-1", "fl-1", users.RoleFreelancer)
	require.ErrorIs(t, err, ErrSessionNotActive)
}

func TestStop_RejectsNonOwner(t *testing.T) {
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return activeSessionAt("fl-1", testClock.Add(-time.Hour)), nil
		},
	}

	_, err := newTestService(store, nil).Stop(context.Background(), "sess-1", "fl-2", users.RoleFreelancer)
	require.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestStop_AdminMayStopAnySession(t *testing.T) {
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return activeSessionAt("fl-1", testClock.Add(-time.Hour)), nil
		},
		finishFunc: func(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error) {
			return &Session{ID: id, Status: StatusCompleted, Duration: duration, Earnings: earnings}, nil
		},
	}

	_, err := newTestService(store, nil).Stop(context.Background(), "sess-1", "admin-1", users.RoleAdmin)
	require.NoError(t, err)
}

func TestStop_NotFound(t *testing.T) {
	store := &mockStore{
		getByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return nil, ErrSessionNotFound
		},
	}

	_, err := newTestService(store, nil).Stop(context.Background(), "missing", "fl-1", users.RoleFreelancer)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestList_FreelancerSeesOnlyOwnSessions(t *testing.T) {
	store := &mockStore{
		listFunc: func(ctx context.Context, filter ListFilter) ([]Session, error) {
			require.Equal(t, "fl-1", filter.FreelancerID)
			return []Session{}, nil
		},
	}

	// Asking for another freelancer's sessions is silently narrowed to own
	_, err := newTestService(store, nil).List(context.Background(), "fl-1", users.RoleFreelancer, ListFilter{FreelancerID: "fl-2"})
	require.NoError(t, err)
}

func TestList_AdminFilterPassedThrough(t *testing.T) {
	store := &mockStore{
		listFunc: func(ctx context.Context, filter ListFilter) ([]Session, error) {
			require.Equal(t, "fl-2", filter.FreelancerID)
			require.Equal(t, StatusActive, filter.Status)
			return []Session{}, nil
		},
	}

	_, err := newTestService(store, nil).List(context.Background(), "admin-1", users.RoleAdmin, ListFilter{FreelancerID: "fl-2", Status: StatusActive})
	require.NoError(t, err)
}
