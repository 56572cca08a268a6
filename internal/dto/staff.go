package dto

import "github.com/noah-isme/event-planner-api/internal/models"

// CreateStaffRequest is the admin payload for adding a staff member.
type CreateStaffRequest struct {
	Name     string  `json:"name" validate:"required,notblank,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Role     string  `json:"role" validate:"required,oneof=PLANNER ADMIN"`
	Password string  `json:"password" validate:"required,min=6"`
}

// StaffDetails is a staff record with the number of events it owns.
type StaffDetails struct {
	Staff          models.Staff `json:"staff"`
	AssignedEvents int          `json:"assignedEvents"`
}
