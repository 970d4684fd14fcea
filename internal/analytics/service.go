// Package analytics reduces the session log into the dashboard views:
// headline totals, a per-day breakdown, a per-freelancer breakdown for
// admins, and the most recent sessions, all bounded by a lookback period.
package analytics

import (
	"context"
	"sort"
	"time"

	"worktrack/internal/sessions"
	"worktrack/internal/users"
)

// SessionSource supplies the sessions to aggregate
type SessionSource interface {
	List(ctx context.Context, filter sessions.ListFilter) ([]sessions.Session, error)
}

// FreelancerSource supplies the freelancer roster for the admin breakdown
type FreelancerSource interface {
	ListFreelancers(ctx context.Context) ([]users.User, error)
}

// Service defines the analytics interface
type Service interface {
	Report(ctx context.Context, callerID, callerRole, period string) (*Report, error)
}

type service struct {
	sessions    SessionSource
	freelancers FreelancerSource
	now         func() time.Time
}

// NewService creates a new analytics service
func NewService(sessionSource SessionSource, freelancerSource FreelancerSource) Service {
	return &service{sessions: sessionSource, freelancers: freelancerSource, now: time.Now}
}

// periodDuration maps a period selector to its lookback window.
// Unrecognized values fall back to the default.
func periodDuration(period string) time.Duration {
	switch period {
	case PeriodDay:
		return 24 * time.Hour
	case PeriodWeek:
		return 7 * 24 * time.Hour
	case PeriodMonth:
		return 30 * 24 * time.Hour
	case PeriodQuarter:
		return 90 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// Report builds the analytics views over sessions created since the period
// cutoff. Freelancer callers are restricted to their own sessions and get
// an empty freelancer breakdown.
func (s *service) Report(ctx context.Context, callerID, callerRole, period string) (*Report, error) {
	cutoff := s.now().Add(-periodDuration(period))

	filter := sessions.ListFilter{CreatedSince: &cutoff}
	if callerRole == users.RoleFreelancer {
		filter.FreelancerID = callerID
	}

	selected, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Summary:             summarize(selected),
		DailyBreakdown:      dailyBreakdown(selected),
		FreelancerBreakdown: []FreelancerStat{},
		RecentSessions:      recent(selected),
	}

	if callerRole == users.RoleAdmin {
		freelancers, err := s.freelancers.ListFreelancers(ctx)
		if err != nil {
			return nil, err
		}
		report.FreelancerBreakdown = freelancerBreakdown(freelancers, selected)
	}

	return report, nil
}

func summarize(selected []sessions.Session) Summary {
	sum := Summary{TotalSessions: len(selected)}
	for _, sess := range selected {
		sum.TotalHours += sess.Duration
		sum.TotalEarnings += sess.Earnings
		switch sess.Status {
		case sessions.StatusActive:
			sum.ActiveSessions++
		case sessions.StatusCompleted:
			sum.CompletedSessions++
		}
	}
	return sum
}

// dailyBreakdown groups sessions by the UTC calendar date of their creation
// time. Every session lands in exactly one bucket; the result is sorted
// ascending by date.
func dailyBreakdown(selected []sessions.Session) []DailyStat {
	byDate := make(map[string]*DailyStat)
	for _, sess := range selected {
		date := sess.CreatedAt.UTC().Format("2006-01-02")
		stat, ok := byDate[date]
		if !ok {
			stat = &DailyStat{Date: date}
			byDate[date] = stat
		}
		stat.Hours += sess.Duration
		stat.Earnings += sess.Earnings
		stat.Sessions++
	}

	result := make([]DailyStat, 0, len(byDate))
	for _, stat := range byDate {
		result = append(result, *stat)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })

	return result
}

// freelancerBreakdown emits one row per freelancer, zero-valued when they
// have no sessions in the window.
func freelancerBreakdown(freelancers []users.User, selected []sessions.Session) []FreelancerStat {
	byFreelancer := make(map[string][]sessions.Session)
	for _, sess := range selected {
		byFreelancer[sess.Freelancer.ID] = append(byFreelancer[sess.Freelancer.ID], sess)
	}

	result := make([]FreelancerStat, 0, len(freelancers))
	for _, f := range freelancers {
		stat := FreelancerStat{
			ID:         f.ID,
			Name:       f.Name,
			Email:      f.Email,
			HourlyRate: f.HourlyRate,
		}
		for _, sess := range byFreelancer[f.ID] {
			stat.TotalHours += sess.Duration
			stat.TotalEarnings += sess.Earnings
			stat.SessionCount++
		}
		result = append(result, stat)
	}

	return result
}

// recent returns the newest sessions, relying on the store's descending
// creation-time order.
func recent(selected []sessions.Session) []sessions.Session {
	if len(selected) > RecentSessionLimit {
		return selected[:RecentSessionLimit]
	}
	return selected
}
