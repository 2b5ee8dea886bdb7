package dto

import (
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/dataset"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// TableResponse is one rendered page of the ticket table.
type TableResponse struct {
	Data       []domain.Ticket `json:"data"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalRows  int             `json:"total_rows"`
	CapturedAt string          `json:"captured_at,omitempty"`
}

// TableResponseFrom converts a dataset page. capturedAt is the import
// time of the snapshot backing the page; zero when nothing is loaded.
func TableResponseFrom(page dataset.Page, capturedAt time.Time) TableResponse {
	resp := TableResponse{
		Data:       page.Tickets,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		TotalRows:  page.TotalRows,
	}
	if !capturedAt.IsZero() {
		resp.CapturedAt = capturedAt.Format(time.RFC3339)
	}
	return resp
}

// ImportResponse reports an accepted import.
type ImportResponse struct {
	Rows     int    `json:"rows"`
	Filename string `json:"filename"`
}

// UpdateFieldRequest carries the new value for a ticket field write-back.
type UpdateFieldRequest struct {
	Value string `json:"value"`
}

// NoteRequest carries the text of a new ticket note.
type NoteRequest struct {
	Text string `json:"text"`
}

// NotificationItem is one dashboard notification.
type NotificationItem struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	TicketID  string `json:"ticket_id,omitempty"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}
