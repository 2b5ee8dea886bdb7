package domain

import "time"

// NotificationKind classifies dashboard notifications.
type NotificationKind string

const (
	NotificationImportCompleted    NotificationKind = "import_completed"
	NotificationRemoteUpdateOK     NotificationKind = "remote_update_ok"
	NotificationRemoteUpdateFailed NotificationKind = "remote_update_failed"
)

// Notification is a dashboard notice. Created once, its read flag flips
// false to true and it is never deleted individually.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	TicketID  string           `json:"ticket_id,omitempty"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
