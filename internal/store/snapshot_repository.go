package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// ErrNoSnapshot indicates no snapshot has ever been persisted.
var ErrNoSnapshot = errors.New("store: no snapshot available")

// snapshotKey is the single slot the latest snapshot occupies. Imports
// fully replace the previous dataset, so one row is all we keep.
const snapshotKey = 1

// SnapshotRepository persists the imported ticket dataset.
type SnapshotRepository interface {
	ReplaceSnapshot(ctx context.Context, snapshot domain.Snapshot) error
	LatestSnapshot(ctx context.Context) (domain.Snapshot, error)
}

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository instantiates repository.
func NewSnapshotRepository(pool *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepository{pool: pool}
}

// ReplaceSnapshot swaps the stored dataset atomically. Readers either
// see the previous snapshot or the new one, never a partial mix.
func (r *snapshotRepository) ReplaceSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	if r.pool == nil {
		return ErrNoSnapshot
	}

	payload, err := json.Marshal(snapshot.Tickets)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM snapshots WHERE capture_key=$1`, snapshotKey); err != nil {
		return err
	}

	const query = `
        INSERT INTO snapshots (capture_key, captured_at, tickets)
        VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, query, snapshotKey, snapshot.CapturedAt, payload); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *snapshotRepository) LatestSnapshot(ctx context.Context) (domain.Snapshot, error) {
	if r.pool == nil {
		return domain.Snapshot{}, ErrNoSnapshot
	}

	const query = `
        SELECT captured_at, tickets FROM snapshots
        ORDER BY capture_key DESC LIMIT 1`

	var snapshot domain.Snapshot
	var payload []byte
	err := r.pool.QueryRow(ctx, query).Scan(&snapshot.CapturedAt, &payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return domain.Snapshot{}, err
	}

	if err := json.Unmarshal(payload, &snapshot.Tickets); err != nil {
		return domain.Snapshot{}, err
	}
	return snapshot, nil
}
