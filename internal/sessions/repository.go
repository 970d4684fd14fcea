package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"worktrack/internal/database"
)

var (
	// ErrSessionNotFound is returned when no session matches the given id
	ErrSessionNotFound = errors.New("session not found")
	// ErrActiveSessionExists is returned when the freelancer already has an
	// active session
	ErrActiveSessionExists = errors.New("active session already exists")
)

const sessionColumns = `s.id, s.freelancer_id, u.name, u.email, u.hourly_rate,
	s.start_time, s.end_time, s.duration, s.task, s.module, s.description,
	s.status, s.earnings, s.created_at, s.updated_at`

const sessionFrom = ` FROM work_sessions s JOIN users u ON u.id = s.freelancer_id `

// Repository handles all database operations for work sessions
type Repository struct {
	db database.Service
}

// NewRepository creates a new sessions repository
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

// Create inserts a new active session. The partial unique index on
// (freelancer_id) WHERE status='active' turns a concurrent double-start
// into ErrActiveSessionExists.
func (r *Repository) Create(ctx context.Context, freelancerID, task, module, description string, startTime time.Time) (*Session, error) {
	id := uuid.New().String()

	query := `
		INSERT INTO work_sessions (id, freelancer_id, start_time, task, module, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query, id, freelancerID, startTime, task, module, description, StatusActive)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrActiveSessionExists
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a session with its freelancer identity joined in
func (r *Repository) GetByID(ctx context.Context, id string) (*Session, error) {
	query := `SELECT ` + sessionColumns + sessionFrom + `WHERE s.id = $1`

	s, err := scanSession(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return s, nil
}

// FindActiveByFreelancer returns the freelancer's active session, or nil
// when there is none.
func (r *Repository) FindActiveByFreelancer(ctx context.Context, freelancerID string) (*Session, error) {
	query := `SELECT ` + sessionColumns + sessionFrom + `WHERE s.freelancer_id = $1 AND s.status = $2`

	s, err := scanSession(r.db.QueryRow(ctx, query, freelancerID, StatusActive))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}

	return s, nil
}

// List retrieves sessions matching the filter, newest first
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Session, error) {
	query := `SELECT ` + sessionColumns + sessionFrom
	args := []interface{}{}
	where := ""
	argPos := 1

	addCond := func(cond string, value interface{}) {
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.FreelancerID != "" {
		addCond("s.freelancer_id = $%d", filter.FreelancerID)
	}
	if filter.Status != "" {
		addCond("s.status = $%d", filter.Status)
	}
	if filter.CreatedSince != nil {
		addCond("s.created_at >= $%d", *filter.CreatedSince)
	}

	query += where + ` ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	result := []Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		result = append(result, *s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return result, nil
}

// Finish marks a session completed with its final duration and earnings
func (r *Repository) Finish(ctx context.Context, id string, endTime time.Time, duration int, earnings float64) (*Session, error) {
	query := `
		UPDATE work_sessions
		SET end_time = $1, duration = $2, earnings = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, endTime, duration, earnings, StatusCompleted, id)
	if err != nil {
		return nil, fmt.Errorf("failed to finish session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrSessionNotFound
	}

	return r.GetByID(ctx, id)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var endTime sql.NullTime

	err := row.Scan(
		&s.ID, &s.Freelancer.ID, &s.Freelancer.Name, &s.Freelancer.Email, &s.Freelancer.HourlyRate,
		&s.StartTime, &endTime, &s.Duration, &s.Task, &s.Module, &s.Description,
		&s.Status, &s.Earnings, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		s.EndTime = &endTime.Time
	}

	return &s, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
