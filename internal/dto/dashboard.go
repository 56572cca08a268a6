package dto

import "github.com/noah-isme/event-planner-api/internal/models"

// PlannerStats summarises a planner's events by status.
type PlannerStats struct {
	TotalEvents     int `json:"totalEvents"`
	DraftEvents     int `json:"draftEvents"`
	PendingEvents   int `json:"pendingEvents"`
	PublishedEvents int `json:"publishedEvents"`
}

// PlannerDashboard is the planner landing payload.
type PlannerDashboard struct {
	Staff        models.StaffInfo `json:"staff"`
	Stats        PlannerStats     `json:"stats"`
	UnreadCount  int              `json:"unreadCount"`
	RecentEvents []models.Event   `json:"recentEvents"`
	AllEvents    []models.Event   `json:"allEvents"`
}

// AdminDashboard is the admin landing payload.
type AdminDashboard struct {
	PendingEvents []models.Event         `json:"pendingEvents"`
	PendingCount  int                    `json:"pendingCount"`
	AllEvents     []models.Event         `json:"allEvents"`
	Staff         []models.Staff         `json:"staff"`
	Planners      []models.Staff         `json:"planners"`
	Statuses      []models.EventStatus   `json:"statuses"`
	Categories    []models.EventCategory `json:"categories"`
}

// NotificationFeed is the planner notification panel.
type NotificationFeed struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}
