package users

import "time"

// User roles
const (
	RoleAdmin      = "admin"
	RoleFreelancer = "freelancer"
)

// DefaultHourlyRate is applied when a freelancer is created without a rate
const DefaultHourlyRate = 25

// User represents an account in the system. The bcrypt password hash never
// leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	HourlyRate   float64   `json:"hourlyRate"`
	ProfileImage string    `json:"profileImage"`
	Skills       []string  `json:"skills"`
	IsActive     bool      `json:"isActive"`
	JoinedAt     time.Time `json:"joinedAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FreelancerStats are lifetime totals derived from a freelancer's sessions
type FreelancerStats struct {
	TotalHoursWorked float64 `json:"totalHoursWorked"`
	TotalEarnings    float64 `json:"totalEarnings"`
	ActiveSessions   int     `json:"activeSessions"`
}

// FreelancerWithStats is the admin listing shape
type FreelancerWithStats struct {
	User
	FreelancerStats
}

// CreateFreelancerRequest is the request payload for creating a freelancer
type CreateFreelancerRequest struct {
	Email      string   `json:"email" binding:"required,email"`
	Password   string   `json:"password" binding:"required,min=6"`
	Name       string   `json:"name" binding:"required"`
	HourlyRate *float64 `json:"hourlyRate,omitempty" binding:"omitempty,gt=0"`
	Skills     []string `json:"skills,omitempty"`
}

// UpdateFreelancerRequest is the request payload for updating a freelancer.
// Only the fields listed here can be changed; pointer fields distinguish
// "absent" from zero values.
type UpdateFreelancerRequest struct {
	Email        *string   `json:"email,omitempty" binding:"omitempty,email"`
	Password     *string   `json:"password,omitempty" binding:"omitempty,min=6"`
	Name         *string   `json:"name,omitempty"`
	HourlyRate   *float64  `json:"hourlyRate,omitempty" binding:"omitempty,gt=0"`
	Skills       *[]string `json:"skills,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
}
