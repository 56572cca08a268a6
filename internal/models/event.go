package models

import "time"

// EventStatus represents a lifecycle state of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPending   EventStatus = "PENDING"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusRejected  EventStatus = "REJECTED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// EventStatuses lists every status in display order.
var EventStatuses = []EventStatus{
	EventStatusDraft,
	EventStatusPending,
	EventStatusPublished,
	EventStatusRejected,
	EventStatusCancelled,
	EventStatusCompleted,
}

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	for _, status := range EventStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// EventCategory classifies an event.
type EventCategory string

const (
	CategoryConference EventCategory = "CONFERENCE"
	CategoryWorkshop   EventCategory = "WORKSHOP"
	CategorySeminar    EventCategory = "SEMINAR"
	CategoryMeeting    EventCategory = "MEETING"
	CategorySocial     EventCategory = "SOCIAL"
	CategoryTraining   EventCategory = "TRAINING"
	CategoryOther      EventCategory = "OTHER"
)

// EventCategories lists every category in display order.
var EventCategories = []EventCategory{
	CategoryConference,
	CategoryWorkshop,
	CategorySeminar,
	CategoryMeeting,
	CategorySocial,
	CategoryTraining,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c EventCategory) Valid() bool {
	for _, category := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Event is a planned gathering moving through the approval lifecycle.
type Event struct {
	ID              string        `db:"id" json:"id"`
	PlannerID       string        `db:"planner_id" json:"planner_id"`
	PlannerName     string        `db:"planner_name" json:"planner_name,omitempty"`
	Title           string        `db:"title" json:"title"`
	EventDate       time.Time     `db:"event_date" json:"event_date"`
	Venue           string        `db:"venue" json:"venue"`
	Category        EventCategory `db:"category" json:"category"`
	Description     string        `db:"description" json:"description"`
	Status          EventStatus   `db:"status" json:"status"`
	RejectionReason *string       `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	SubmittedAt     *time.Time    `db:"submitted_at" json:"submitted_at,omitempty"`
	PublishedAt     *time.Time    `db:"published_at" json:"published_at,omitempty"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// EventFilter captures optional, conjunctive criteria for event listings.
type EventFilter struct {
	Status    *EventStatus
	Category  *EventCategory
	PlannerID string
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
}

// EventScope restricts a lookup to events owned by PlannerID. An empty scope is admin-wide.
type EventScope struct {
	PlannerID string
}

// Unscoped is the admin-wide scope.
var Unscoped = EventScope{}
