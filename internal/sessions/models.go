package sessions

import "time"

// Session statuses. StatusPaused is part of the stored enum but no
// operation currently produces it; it is reserved for a pause/resume flow.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

// Defaults applied when a session is started without these fields
const (
	DefaultTask   = "General Development"
	DefaultModule = "General"
)

// Freelancer is the session owner's identity as embedded in responses
type Freelancer struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	HourlyRate float64 `json:"hourlyRate"`
}

// Session represents one contiguous tracked work interval.
// Duration is whole hours; earnings are fixed at stop time.
type Session struct {
	ID          string     `json:"id"`
	Freelancer  Freelancer `json:"freelancer"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Duration    int        `json:"duration"`
	Task        string     `json:"task"`
	Module      string     `json:"module"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Earnings    float64    `json:"earnings"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// StartSessionRequest is the request payload for starting a session
type StartSessionRequest struct {
	Task        string `json:"task,omitempty"`
	Module      string `json:"module,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListFilter narrows session queries
type ListFilter struct {
	FreelancerID string
	Status       string
	CreatedSince *time.Time
}
