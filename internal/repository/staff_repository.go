package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/event-planner-api/internal/models"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

const staffColumns = `id, email, name, phone, password_hash, role, active, created_at, updated_at`

// StaffRepository provides database access for the staff directory.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// FindByEmail returns a staff member by email address, ignoring case.
func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE LOWER(email) = LOWER($1) LIMIT 1`
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, strings.TrimSpace(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	return &staff, nil
}

// FindByID returns a staff member by identifier.
func (r *StaffRepository) FindByID(ctx context.Context, id string) (*models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 LIMIT 1`
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find staff by id: %w", err)
	}
	return &staff, nil
}

// List returns every staff member, optionally restricted to one role, ordered by name.
func (r *StaffRepository) List(ctx context.Context, role *models.StaffRole) ([]models.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff`
	var args []interface{}
	if role != nil {
		query += ` WHERE role = $1`
		args = append(args, *role)
	}
	query += ` ORDER BY name ASC, id ASC`

	staff := make([]models.Staff, 0)
	if err := r.db.SelectContext(ctx, &staff, query, args...); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// Create inserts a staff member. Email collisions yield ErrDuplicate.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = now
	}
	staff.UpdatedAt = now
	staff.Email = strings.ToLower(strings.TrimSpace(staff.Email))

	const query = `INSERT INTO staff (id, email, name, phone, password_hash, role, active, created_at, updated_at) VALUES (:id, :email, :name, :phone, :password_hash, :role, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, staff); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create staff %s: %w", staff.Email, ErrDuplicate)
		}
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// ToggleActive flips the active flag atomically and returns the updated record.
func (r *StaffRepository) ToggleActive(ctx context.Context, id string) (*models.Staff, error) {
	query := `UPDATE staff SET active = NOT active, updated_at = $2 WHERE id = $1 RETURNING ` + staffColumns
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, id, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("toggle staff active: %w", err)
	}
	return &staff, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
