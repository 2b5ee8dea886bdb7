package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
)

type fakeNotificationRepo struct {
	byID  map[string]domain.Notification
	order []string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byID: map[string]domain.Notification{}}
}

func (f *fakeNotificationRepo) Add(_ context.Context, n domain.Notification) error {
	if _, exists := f.byID[n.ID]; exists {
		return nil
	}
	f.byID[n.ID] = n
	f.order = append(f.order, n.ID)
	return nil
}

func (f *fakeNotificationRepo) List(_ context.Context, limit int) ([]domain.Notification, error) {
	out := make([]domain.Notification, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.byID[f.order[i]])
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(context.Context) (int, error) {
	count := 0
	for _, n := range f.byID {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := f.byID[id]; ok {
		n.Read = true
		f.byID[id] = n
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(context.Context) error {
	for id, n := range f.byID {
		n.Read = true
		f.byID[id] = n
	}
	return nil
}

func TestNotificationsFromEvents(t *testing.T) {
	repo := newFakeNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        "evt-1",
		Type:      events.EventSnapshotImported,
		Timestamp: time.Now(),
		Payload:   events.SnapshotImportedPayload{Rows: 42, Filename: "export.csv"},
	})
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        "evt-2",
		Type:      events.EventRemoteUpdateFailed,
		TicketID:  "101",
		Timestamp: time.Now(),
		Payload:   events.RemoteUpdateFailedPayload{Field: "Status", Value: "x", Reason: "Access denied"},
	})

	count, err := svc.UnreadCount(ctx)
	if err != nil || count != 2 {
		t.Fatalf("unread = %d (%v), want 2", count, err)
	}

	list, err := svc.List(ctx, 10)
	if err != nil || len(list) != 2 {
		t.Fatalf("list = %v (%v)", list, err)
	}
	if list[0].Kind != domain.NotificationRemoteUpdateFailed {
		t.Errorf("newest notification kind = %s", list[0].Kind)
	}
}

func TestNotificationsIdempotentOnRedelivery(t *testing.T) {
	repo := newFakeNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())

	ctx := context.Background()
	event := events.Event{
		ID:        "evt-dup",
		Type:      events.EventSnapshotImported,
		Timestamp: time.Now(),
		Payload:   events.SnapshotImportedPayload{Rows: 7},
	}
	_ = dispatcher.Publish(ctx, event)
	_ = dispatcher.Publish(ctx, event)

	count, _ := svc.UnreadCount(ctx)
	if count != 1 {
		t.Errorf("unread after redelivery = %d, want 1", count)
	}
}

func TestMarkAllReadClearsBadge(t *testing.T) {
	repo := newFakeNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        "evt-3",
		Type:      events.EventRemoteUpdateApplied,
		TicketID:  "55",
		Timestamp: time.Now(),
		Payload:   events.RemoteUpdateAppliedPayload{Field: "Squad", Value: "logistica"},
	})

	if err := svc.MarkAllRead(ctx); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	count, _ := svc.UnreadCount(ctx)
	if count != 0 {
		t.Errorf("unread after mark all = %d, want 0", count)
	}
}
