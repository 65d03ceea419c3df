package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sawantaditi24/RoomSync/internal/model"
)

// FilledRetention is how long a filled_up availability post is kept before
// the pre-read prune removes it.
const FilledRetention = 24 * time.Hour

// DeleteOrphans removes availability posts and marketplace items whose owner
// no longer exists. There is no foreign-key cascade; this runs before list
// reads (and once at startup) so listings never show orphaned records.
// Idempotent. Returns the number of rows removed from each table.
func DeleteOrphans(ctx context.Context, db *sql.DB) (availabilities, items int64, err error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM availabilities WHERE user_id NOT IN (SELECT id FROM users)`,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("deleting orphaned availabilities: %w", err)
	}
	availabilities, err = result.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("counting orphaned availabilities: %w", err)
	}

	result, err = db.ExecContext(ctx,
		`DELETE FROM marketplace_items WHERE user_id NOT IN (SELECT id FROM users)`,
	)
	if err != nil {
		return availabilities, 0, fmt.Errorf("deleting orphaned marketplace items: %w", err)
	}
	items, err = result.RowsAffected()
	if err != nil {
		return availabilities, 0, fmt.Errorf("counting orphaned marketplace items: %w", err)
	}

	return availabilities, items, nil
}

// PruneExpiredFilled removes availability posts that have sat in filled_up
// for longer than retention. The comparison runs on the database clock so it
// stays consistent with the CURRENT_TIMESTAMP written on the transition.
// Idempotent. Returns the number of rows removed.
func PruneExpiredFilled(ctx context.Context, db *sql.DB, retention time.Duration) (int64, error) {
	modifier := fmt.Sprintf("-%d seconds", int64(retention.Seconds()))
	result, err := db.ExecContext(ctx,
		`DELETE FROM availabilities
		 WHERE status = ? AND filled_at IS NOT NULL AND filled_at < datetime('now', ?)`,
		model.AvailabilityStatusFilledUp, modifier,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning expired filled posts: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned posts: %w", err)
	}
	return n, nil
}
