package analytics

import "worktrack/internal/sessions"

// Periods accepted by the analytics endpoint; anything else falls back to
// the default.
const (
	PeriodDay     = "1d"
	PeriodWeek    = "7d"
	PeriodMonth   = "30d"
	PeriodQuarter = "90d"

	DefaultPeriod = PeriodWeek
)

// RecentSessionLimit caps the verbatim session list in a report
const RecentSessionLimit = 10

// Summary holds the headline totals over the selected window
type Summary struct {
	TotalHours        int     `json:"totalHours"`
	TotalEarnings     float64 `json:"totalEarnings"`
	ActiveSessions    int     `json:"activeSessions"`
	CompletedSessions int     `json:"completedSessions"`
	TotalSessions     int     `json:"totalSessions"`
}

// DailyStat aggregates the sessions created on one UTC calendar date
type DailyStat struct {
	Date     string  `json:"date"`
	Hours    int     `json:"hours"`
	Earnings float64 `json:"earnings"`
	Sessions int     `json:"sessions"`
}

// FreelancerStat aggregates one freelancer's sessions in the window. Every
// freelancer appears, including those with no sessions in the period.
type FreelancerStat struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	HourlyRate    float64 `json:"hourlyRate"`
	TotalHours    int     `json:"totalHours"`
	TotalEarnings float64 `json:"totalEarnings"`
	SessionCount  int     `json:"sessionCount"`
}

// Report is the full analytics response
type Report struct {
	Summary             Summary            `json:"summary"`
	DailyBreakdown      []DailyStat        `json:"dailyBreakdown"`
	FreelancerBreakdown []FreelancerStat   `json:"freelancerBreakdown"`
	RecentSessions      []sessions.Session `json:"recentSessions"`
}
