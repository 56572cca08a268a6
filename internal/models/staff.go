package models

import (
	"context"
	"time"
)

// StaffRole represents the closed set of staff roles.
type StaffRole string

const (
	RolePlanner StaffRole = "PLANNER"
	RoleAdmin   StaffRole = "ADMIN"
)

// Valid reports whether r is a known role.
func (r StaffRole) Valid() bool {
	return r == RolePlanner || r == RoleAdmin
}

// Staff represents a member of the staff directory.
type Staff struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         StaffRole `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// Transient marks a synthesized identity that has no directory row.
	Transient bool `db:"-" json:"transient,omitempty"`
}

// IsAdmin reports whether the staff member holds the admin role.
func (s *Staff) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type staffContextKey struct{}

// WithStaff returns a copy of ctx carrying the resolved staff member.
func WithStaff(ctx context.Context, staff *Staff) context.Context {
	return context.WithValue(ctx, staffContextKey{}, staff)
}

// StaffFromContext returns the staff member stored by WithStaff.
func StaffFromContext(ctx context.Context) (*Staff, bool) {
	staff, ok := ctx.Value(staffContextKey{}).(*Staff)
	return staff, ok && staff != nil
}
