package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/tracker"
	"github.com/spec-kit/ticket-dashboard/pkg/util"
)

// Tracker custom field names as configured in the remote project.
const (
	fieldStatus = "Status"
	fieldGmud   = "GMUD"
	fieldSquad  = "Squad"
)

// UpdateStatus writes the workflow status back to the tracker and, on
// confirmation, reflects it in the local dataset. The local record is
// never updated optimistically.
func (s *DashboardService) UpdateStatus(ctx context.Context, ticketID, value string) error {
	return s.remoteUpdate(ctx, ticketID, fieldStatus, value,
		func() error {
			return s.tracker.UpdateCustomField(ctx, ticketID, s.fields.StatusFieldID, fieldStatus, value)
		},
		func(t *domain.Ticket) { t.Status = value },
	)
}

// UpdateGmud writes the change-management identifier back to the tracker.
func (s *DashboardService) UpdateGmud(ctx context.Context, ticketID, value string) error {
	return s.remoteUpdate(ctx, ticketID, fieldGmud, value,
		func() error {
			return s.tracker.UpdateCustomField(ctx, ticketID, s.fields.GmudFieldID, fieldGmud, value)
		},
		nil,
	)
}

// UpdateSquad writes the squad assignment back to the tracker.
func (s *DashboardService) UpdateSquad(ctx context.Context, ticketID, value string) error {
	return s.remoteUpdate(ctx, ticketID, fieldSquad, value,
		func() error {
			return s.tracker.UpdateCustomField(ctx, ticketID, s.fields.SquadFieldID, fieldSquad, value)
		},
		func(t *domain.Ticket) { t.Squad = value },
	)
}

// UpdateAssignee reassigns the ticket handler on the tracker.
func (s *DashboardService) UpdateAssignee(ctx context.Context, ticketID, assignee string) error {
	return s.remoteUpdate(ctx, ticketID, "handler", assignee,
		func() error {
			return s.tracker.UpdateHandler(ctx, ticketID, assignee)
		},
		func(t *domain.Ticket) { t.Assignee = assignee },
	)
}

// AddNote appends a public note to the remote ticket. Notes are not
// part of the local dataset, so nothing is reflected on success.
func (s *DashboardService) AddNote(ctx context.Context, ticketID, text string) error {
	return s.remoteUpdate(ctx, ticketID, "note", text,
		func() error {
			return s.tracker.AddNote(ctx, ticketID, text)
		},
		nil,
	)
}

// remoteUpdate runs the confirm-then-reflect write-back: the tracker
// call must succeed before the local dataset is touched.
func (s *DashboardService) remoteUpdate(ctx context.Context, ticketID, field, value string, call func() error, patch func(*domain.Ticket)) error {
	if !s.hasTicket(ticketID) {
		return util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}

	if err := call(); err != nil {
		s.metrics.RecordRemoteUpdate(field, false)
		s.publish(ctx, events.Event{
			Type:     events.EventRemoteUpdateFailed,
			TicketID: ticketID,
			Payload:  events.RemoteUpdateFailedPayload{Field: field, Value: value, Reason: err.Error()},
		})
		s.logger.Warn("remote update failed",
			zap.String("ticket_id", ticketID),
			zap.String("field", field),
			zap.Error(err),
		)

		var remote *tracker.RemoteError
		if errors.As(err, &remote) {
			return util.NewRemoteUpdateError(ticketID, remote.Message, err)
		}
		return util.NewRemoteUpdateError(ticketID, "", err)
	}

	if patch != nil {
		s.reflectUpdate(ctx, ticketID, patch)
	}

	s.metrics.RecordRemoteUpdate(field, true)
	s.publish(ctx, events.Event{
		Type:     events.EventRemoteUpdateApplied,
		TicketID: ticketID,
		Payload:  events.RemoteUpdateAppliedPayload{Field: field, Value: value},
	})
	return nil
}

// reflectUpdate patches the confirmed change into a rebuilt dataset and
// persists the new snapshot.
func (s *DashboardService) reflectUpdate(ctx context.Context, ticketID string, patch func(*domain.Ticket)) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	current := s.tickets
	capturedAt := s.capturedAt
	s.mu.RUnlock()

	next := make([]domain.Ticket, len(current))
	copy(next, current)
	for i := range next {
		if next[i].ID != ticketID {
			continue
		}
		patch(&next[i])
		next[i].LastUpdatedAt = s.now().Format(timestampLayout)
		break
	}

	snapshot := domain.Snapshot{CapturedAt: capturedAt, Tickets: next}
	if err := s.snapshots.ReplaceSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn("updated snapshot not persisted", zap.Error(err))
	} else if s.cache != nil {
		s.cache.Set(ctx, snapshot)
	}
	s.swap(snapshot)
}

func (s *DashboardService) hasTicket(ticketID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tickets {
		if s.tickets[i].ID == ticketID {
			return true
		}
	}
	return false
}
