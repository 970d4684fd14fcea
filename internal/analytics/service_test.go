package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"worktrack/internal/sessions"
	"worktrack/internal/users"
)

type mockSessionSource struct {
	listFunc func(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error)
}

func (m *mockSessionSource) List(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error) {
	return m.listFunc(ctx, filter)
}

type mockFreelancerSource struct {
	freelancers []users.User
}

func (m *mockFreelancerSource) ListFreelancers(ctx context.Context) ([]users.User, error) {
	return m.freelancers, nil
}

var reportClock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(src SessionSource, fls FreelancerSource) *service {
	if fls == nil {
		fls = &mockFreelancerSource{}
	}
	return &service{sessions: src, freelancers: fls, now: func() time.Time { return reportClock }}
}

func completedSession(id, freelancerID string, createdAt time.Time, hours int, earnings float64) sessions.Session {
	return sessions.Session{
		ID:         id,
		Freelancer: sessions.Freelancer{ID: freelancerID},
		Status:     sessions.StatusCompleted,
		Duration:   hours,
		Earnings:   earnings,
		CreatedAt:  createdAt,
	}
}

func TestPeriodDuration(t *testing.T) {
	cases := []struct {
		period string
		want   time.Duration
	}{
		{PeriodDay, 24 * time.Hour},
		{PeriodWeek, 7 * 24 * time.Hour},
		{PeriodMonth, 30 * 24 * time.Hour},
		{PeriodQuarter, 90 * 24 * time.Hour},
		{"banana", 7 * 24 * time.Hour},
		{"", 7 * 24 * time.Hour},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, periodDuration(tc.period), "period %q", tc.period)
	}
}

func TestReport_FreelancerScopedToOwnSessions(t *testing.T) {
	src := &mockSessionSource{
		listFunc: func(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error) {
			require.Equal(t, "fl-1", filter.FreelancerID)
			require.NotNil(t, filter.CreatedSince)
			require.Equal(t, reportClock.Add(-7*24*time.Hour), *filter.CreatedSince)
			return []sessions.Session{}, nil
		},
	}

	report, err := newTestService(src, nil).Report(context.Background(), "fl-1", users.RoleFreelancer, PeriodWeek)
	require.NoError(t, err)
	require.NotNil(t, report.FreelancerBreakdown)
	require.Empty(t, report.FreelancerBreakdown)
}

func TestReport_AdminSeesAllSessions(t *testing.T) {
	src := &mockSessionSource{
		listFunc: func(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error) {
			require.Empty(t, filter.FreelancerID)
			return []sessions.Session{}, nil
		},
	}

	_, err := newTestService(src, nil).Report(context.Background(), "admin-1", users.RoleAdmin, PeriodMonth)
	require.NoError(t, err)
}

func TestReport_Summary(t *testing.T) {
	active := sessions.Session{
		ID:         "s-active",
		Freelancer: sessions.Freelancer{ID: "fl-1"},
		Status:     sessions.StatusActive,
		CreatedAt:  reportClock,
	}
	src := &mockSessionSource{
		listFunc: func(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error) {
			return []sessions.Session{
				active,
				completedSession("s-1", "fl-1", reportClock.Add(-24*time.Hour), 3, 90),
				completedSession("s-2", "fl-1", reportClock.Add(-48*time.Hour), 2, 60),
			}, nil
		},
	}

	report, err := newTestService(src, nil).Report(context.Background(), "fl-1", users.RoleFreelancer, PeriodWeek)
	require.NoError(t, err)

	require.Equal(t, 5, report.Summary.TotalHours)
	require.Equal(t, 150.0, report.Summary.TotalEarnings)
	require.Equal(t, 1, report.Summary.ActiveSessions)
	require.Equal(t, 2, report.Summary.CompletedSessions)
	require.Equal(t, 3, report.Summary.TotalSessions)
}

func TestReport_DailyBreakdownGroupsByUTCDate(t *testing.T) {
	// Two sessions on June 14 (one just before midnight UTC), one on June 13
	src := &mockSessionSource{
		listFunc: func(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error) {
			return []sessions.Session{
				completedSession("s-1", "fl-1", time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC), 2, 50),
				completedSession("s-2", "fl-1", time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC), 1, 25),
				completedSession("s-3", "fl-1", time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC), 4, 100),
			}, nil
		},
	}

	report, err := newTestService(src, nil).Report(context.Background(), "fl-1", users.RoleFreelancer, PeriodWeek)
	require.NoError(t, err)

	require.Len(t, report.DailyBreakdown, 2)
	require.Equal(t, "2025-06-13", report.DailyBreakdown[0].Date)
	require.Equal(t, 4, report.DailyBreakdown[0].Hours)
	require.Equal(t, 100.0, report.DailyBreakdown[0].Earnings)
	require.Equal(t, 1, report.DailyBreakdown[0].Sessions)

	require.Equal(t, "2025-06-14", report.DailyBreakdown[1].Date)
	require.Equal(t, 3, report.DailyBreakdown[1].Hours)
	require.Equal(t, 75.0, report.DailyBreakdown[1].Earnings)
	require.Equal(t, 2, report.DailyBreakdown[1].Sessions)
}

func TestReport_FreelancerBreakdownIncludesZeroRows(t *testing.T) {
	src := &mockSessionSource{
		listFunc: func(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error) {
			return []sessions.Session{
				completedSession("s-1", "fl-1", reportClock.Add(-time.Hour), 2, 60),
				completedSession("s-2", "fl-1", reportClock.Add(-2*time.Hour), 1, 30),
			}, nil
		},
	}
	fls := &mockFreelancerSource{
		freelancers: []users.User{
			{ID: "fl-1", Name: "Busy", Email: "busy@demo.com", HourlyRate: 30},
			{ID: "fl-2", Name: "Idle", Email: "idle@demo.com", HourlyRate: 40},
		},
	}

	report, err := newTestService(src, fls).Report(context.Background(), "admin-1", users.RoleAdmin, PeriodWeek)
	require.NoError(t, err)

	require.Len(t, report.FreelancerBreakdown, 2)

	busy := report.FreelancerBreakdown[0]
	require.Equal(t, "fl-1", busy.ID)
	require.Equal(t, 3, busy.TotalHours)
	require.Equal(t, 90.0, busy.TotalEarnings)
	require.Equal(t, 2, busy.SessionCount)

	idle := report.FreelancerBreakdown[1]
	require.Equal(t, "fl-2", idle.ID)
	require.Equal(t, 40.0, idle.HourlyRate)
	require.Zero(t, idle.TotalHours)
	require.Zero(t, idle.TotalEarnings)
	require.Zero(t, idle.SessionCount)
}

func TestReport_RecentSessionsCapped(t *testing.T) {
	var all []sessions.Session
	for i := 0; i < 15; i++ {
		all = append(all, completedSession(
			fmt.Sprintf("s-%d", i), "fl-1",
			reportClock.Add(-time.Duration(i)*time.Hour), 1, 25,
		))
	}
	src := &mockSessionSource{
		listFunc: func(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error) {
			return all, nil
		},
	}

	report, err := newTestService(src, nil).Report(context.Background(), "fl-1", users.RoleFreelancer, PeriodWeek)
	require.NoError(t, err)

	require.Len(t, report.RecentSessions, RecentSessionLimit)
	// The store returns newest first; the cap keeps the head of the list
	require.Equal(t, "s-0", report.RecentSessions[0].ID)
	require.Equal(t, "s-9", report.RecentSessions[9].ID)
}
