package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// NotificationRepository persists dashboard notifications.
type NotificationRepository interface {
	Add(ctx context.Context, notification domain.Notification) error
	List(ctx context.Context, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

// Add stores a notification. Re-adding the same id is a no-op so event
// redelivery never duplicates entries.
func (r *notificationRepository) Add(ctx context.Context, notification domain.Notification) error {
	if r.pool == nil {
		return nil
	}
	const query = `
        INSERT INTO notifications (id, kind, ticket_id, message, read, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query,
		notification.ID,
		notification.Kind,
		notification.TicketID,
		notification.Message,
		notification.Read,
		notification.CreatedAt,
	)
	return err
}

func (r *notificationRepository) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	if r.pool == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, kind, ticket_id, message, read, created_at
        FROM notifications
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.TicketID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, nil
	}
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT read`).Scan(&count)
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE notifications SET read=TRUE WHERE id=$1`, id)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE notifications SET read=TRUE WHERE NOT read`)
	return err
}
