package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"worktrack/internal/database"
)

var (
	// ErrUserNotFound is returned when no user matches the given id or email
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when the email is already registered
	ErrEmailExists = errors.New("email already registered")
)

const userColumns = `id, email, password, name, role, hourly_rate, profile_image, skills, is_active, joined_at, created_at, updated_at`

// Repository handles all database operations for users
type Repository struct {
	db database.Service
}

// NewRepository creates a new users repository
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. The password must already be hashed.
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	skills, err := json.Marshal(emptyIfNil(u.Skills))
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	query := `
		INSERT INTO users (id, email, password, name, role, hourly_rate, profile_image, skills, is_active, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW(), NOW())
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New().String(), u.Email, u.Password, u.Name, u.Role,
		u.HourlyRate, u.ProfileImage, skills, u.IsActive,
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByID retrieves a user by id
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email (emails are stored lowercase)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = LOWER($1)`

	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// ListFreelancers retrieves every user with the freelancer role
func (r *Repository) ListFreelancers(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY joined_at`

	rows, err := r.db.Query(ctx, query, RoleFreelancer)
	if err != nil {
		return nil, fmt.Errorf("failed to query freelancers: %w", err)
	}
	defer rows.Close()

	freelancers := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan freelancer: %w", err)
		}
		freelancers = append(freelancers, *u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate freelancers: %w", err)
	}

	return freelancers, nil
}

// ListFreelancersWithStats retrieves every freelancer together with lifetime
// totals derived from all their sessions, not bounded by any period.
func (r *Repository) ListFreelancersWithStats(ctx context.Context) ([]FreelancerWithStats, error) {
	query := `
		SELECT ` + prefixColumns("u", userColumns) + `,
		       COALESCE(SUM(s.duration), 0),
		       COALESCE(SUM(s.earnings), 0),
		       COUNT(s.id) FILTER (WHERE s.status = 'active')
		FROM users u
		LEFT JOIN work_sessions s ON s.freelancer_id = u.id
		WHERE u.role = $1
		GROUP BY u.id
		ORDER BY u.joined_at
	`

	rows, err := r.db.Query(ctx, query, RoleFreelancer)
	if err != nil {
		return nil, fmt.Errorf("failed to query freelancer stats: %w", err)
	}
	defer rows.Close()

	result := []FreelancerWithStats{}
	for rows.Next() {
		var f FreelancerWithStats
		var skills []byte
		err := rows.Scan(
			&f.ID, &f.Email, &f.Password, &f.Name, &f.Role,
			&f.HourlyRate, &f.ProfileImage, &skills, &f.IsActive,
			&f.JoinedAt, &f.CreatedAt, &f.UpdatedAt,
			&f.TotalHoursWorked, &f.TotalEarnings, &f.ActiveSessions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan freelancer stats: %w", err)
		}
		if err := json.Unmarshal(skills, &f.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills: %w", err)
		}
		result = append(result, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate freelancer stats: %w", err)
	}

	return result, nil
}

// Update modifies the explicitly allowed fields of a user. A password in the
// request must already be hashed by the caller.
func (r *Repository) Update(ctx context.Context, id string, upd UpdateFreelancerRequest) (*User, error) {
	fields := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Password != nil {
		add("password", *upd.Password)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.HourlyRate != nil {
		add("hourly_rate", *upd.HourlyRate)
	}
	if upd.Skills != nil {
		skills, err := json.Marshal(emptyIfNil(*upd.Skills))
		if err != nil {
			return nil, fmt.Errorf("failed to encode skills: %w", err)
		}
		add("skills", skills)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}
	if upd.ProfileImage != nil {
		add("profile_image", *upd.ProfileImage)
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE users SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		joinFields(fields), argPos, userColumns)
	args = append(args, id)

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// Delete removes a user. Their sessions cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// scanner covers *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row scanner) (*User, error) {
	var u User
	var skills []byte

	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.Role,
		&u.HourlyRate, &u.ProfileImage, &skills, &u.IsActive,
		&u.JoinedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &u.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}

	return &u, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func joinFields(fields []string) string {
	out := fields[0]
	for _, f := range fields[1:] {
		out += ", " + f
	}
	return out
}

func prefixColumns(prefix, columns string) string {
	out := ""
	for i, c := range splitColumns(columns) {
		if i > 0 {
			out += ", "
		}
		out += prefix + "." + c
	}
	return out
}

func splitColumns(columns string) []string {
	parts := []string{}
	current := ""
	for _, ch := range columns {
		switch ch {
		case ',':
			parts = append(parts, current)
			current = ""
		case ' ', '\n', '\t':
		default:
			current += string(ch)
		}
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
