package domain

import "time"

// NotificationType tags the workflow event a notification came from.
type NotificationType string

const (
	NotificationDoubtSubmitted    NotificationType = "doubt_submitted"
	NotificationDoubtAssigned     NotificationType = "doubt_assigned"
	NotificationDoubtResolved     NotificationType = "doubt_resolved"
	NotificationLeadAssigned      NotificationType = "lead_assigned"
	NotificationLeadStatusChanged NotificationType = "lead_status_changed"
)

// Notification is a persisted dashboard notification for a recipient
// email.
type Notification struct {
	ID        string
	Recipient string
	Type      NotificationType
	Message   string
	Read      bool
	CreatedAt time.Time
}
