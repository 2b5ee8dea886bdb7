package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/store"
)

// NotificationService turns dispatcher events into persisted dashboard
// notifications.
type NotificationService struct {
	notifications store.NotificationRepository
	logger        *zap.Logger
}

// NewNotificationService constructs the service and wires it to the
// dispatcher.
func NewNotificationService(repo store.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{notifications: repo, logger: logger}

	dispatcher.Subscribe(events.EventSnapshotImported, s.onSnapshotImported)
	dispatcher.Subscribe(events.EventRemoteUpdateApplied, s.onRemoteUpdateApplied)
	dispatcher.Subscribe(events.EventRemoteUpdateFailed, s.onRemoteUpdateFailed)
	return s
}

// List returns recent notifications, newest first.
func (s *NotificationService) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	return s.notifications.List(ctx, limit)
}

// UnreadCount returns the unread badge value.
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.notifications.CountUnread(ctx)
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

// MarkAllRead clears the unread badge.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.notifications.MarkAllRead(ctx)
}

func (s *NotificationService) onSnapshotImported(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SnapshotImportedPayload)
	if !ok {
		return nil
	}
	return s.add(ctx, event, domain.NotificationImportCompleted,
		fmt.Sprintf("Importação concluída: %d tickets", payload.Rows))
}

func (s *NotificationService) onRemoteUpdateApplied(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RemoteUpdateAppliedPayload)
	if !ok {
		return nil
	}
	return s.add(ctx, event, domain.NotificationRemoteUpdateOK,
		fmt.Sprintf("Ticket %s: %s atualizado para %q", event.TicketID, payload.Field, payload.Value))
}

func (s *NotificationService) onRemoteUpdateFailed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RemoteUpdateFailedPayload)
	if !ok {
		return nil
	}
	return s.add(ctx, event, domain.NotificationRemoteUpdateFailed,
		fmt.Sprintf("Ticket %s: falha ao atualizar %s (%s)", event.TicketID, payload.Field, payload.Reason))
}

// add persists a notification keyed by the event id, so a re-published
// event does not duplicate it.
func (s *NotificationService) add(ctx context.Context, event events.Event, kind domain.NotificationKind, message string) error {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	err := s.notifications.Add(ctx, domain.Notification{
		ID:        id,
		Kind:      kind,
		TicketID:  event.TicketID,
		Message:   message,
		CreatedAt: event.Timestamp,
	})
	if err != nil {
		s.logger.Warn("notification not persisted", zap.Error(err))
	}
	return err
}
