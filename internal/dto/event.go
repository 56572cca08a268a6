package dto

import "github.com/noah-isme/event-planner-api/internal/models"

// DateLayout is the wire format of event dates.
const DateLayout = "2006-01-02"

// EventForm is the planner-editable part of an event.
type EventForm struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	EventDate   string `json:"event_date" validate:"required,datetime=2006-01-02"`
	Venue       string `json:"venue" validate:"required,notblank,max=255"`
	Category    string `json:"category" validate:"required,event_category"`
	Description string `json:"description" validate:"required,notblank,max=2000"`
}

// CreateEventRequest wraps the form with the planner's intent.
type CreateEventRequest struct {
	EventForm
	// Action is "draft" or "submit"; anything else saves a draft.
	Action string `json:"action"`
}

// Create actions.
const (
	ActionDraft  = "draft"
	ActionSubmit = "submit"
)

// ApproveRequest carries optional reviewer notes.
type ApproveRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// EventQuery is the query-string filter shared by planner and admin listings.
type EventQuery struct {
	Status    string `form:"status"`
	Category  string `form:"category"`
	PlannerID string `form:"planner_id"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
	Format    string `form:"format"`
}

// EventList is a listing together with the filter options a client can offer.
type EventList struct {
	Events     []models.Event         `json:"events"`
	Statuses   []models.EventStatus   `json:"statuses"`
	Categories []models.EventCategory `json:"categories"`
}
