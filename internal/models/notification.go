package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationApproved NotificationType = "APPROVED"
	NotificationRejected NotificationType = "REJECTED"
	NotificationInfo     NotificationType = "INFO"
)

// Notification is a message addressed to one staff member.
type Notification struct {
	ID          string           `db:"id" json:"id"`
	RecipientID string           `db:"recipient_id" json:"recipient_id"`
	EventID     *string          `db:"event_id" json:"event_id,omitempty"`
	Title       string           `db:"title" json:"title"`
	Message     string           `db:"message" json:"message"`
	Type        NotificationType `db:"type" json:"type"`
	Read        bool             `db:"read_flag" json:"read"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}
