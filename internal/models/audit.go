package models

import "time"

// Audit actions recorded for lifecycle transitions and staff administration.
const (
	AuditActionLogin         = "LOGIN"
	AuditActionEventCreate   = "EVENT_CREATE"
	AuditActionEventUpdate   = "EVENT_UPDATE"
	AuditActionEventSubmit   = "EVENT_SUBMIT"
	AuditActionEventCancel   = "EVENT_CANCEL"
	AuditActionEventDelete   = "EVENT_DELETE"
	AuditActionEventApprove  = "EVENT_APPROVE"
	AuditActionEventReject   = "EVENT_REJECT"
	AuditActionEventComplete = "EVENT_COMPLETE"
	AuditActionStaffCreate   = "STAFF_CREATE"
	AuditActionStaffToggle   = "STAFF_TOGGLE"
	AuditActionEventExport   = "EVENT_EXPORT"
)

// Audited resources.
const (
	AuditResourceEvent = "event"
	AuditResourceStaff = "staff"
	AuditResourceAuth  = "auth"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorID    *string   `db:"actor_id" json:"actor_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	OldValues  []byte    `db:"old_values" json:"old_values,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
