package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSnapshotImported    EventType = "snapshot_imported"
	EventRemoteUpdateApplied EventType = "remote_update_applied"
	EventRemoteUpdateFailed  EventType = "remote_update_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SnapshotImportedPayload payload.
type SnapshotImportedPayload struct {
	Rows     int    `json:"rows"`
	Filename string `json:"filename,omitempty"`
}

// RemoteUpdateAppliedPayload payload.
type RemoteUpdateAppliedPayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// RemoteUpdateFailedPayload payload.
type RemoteUpdateFailedPayload struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}
