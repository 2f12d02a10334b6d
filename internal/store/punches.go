package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dmoreira/pontobot/internal/punch"
)

// AppendPunch records one punch event. The log is append-only; nothing is
// validated against prior events on purpose, duplicate kinds included.
func (db *DB) AppendPunch(ctx context.Context, userID string, kind punch.Kind, occurredAt time.Time) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO punches (user_id, kind, occurred_at) VALUES (?, ?, ?)",
		userID, string(kind), occurredAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting punch: %w", err)
	}
	return nil
}

// QueryPunches returns one user's events in [start, end), ascending by
// occurrence time with insertion order breaking ties.
func (db *DB) QueryPunches(ctx context.Context, userID string, start, end time.Time) ([]punch.Event, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT user_id, kind, occurred_at
		 FROM punches
		 WHERE user_id = ? AND occurred_at >= ? AND occurred_at < ?
		 ORDER BY occurred_at ASC, id ASC`,
		userID,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("querying punches: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var (
			ev          punch.Event
			kindStr     string
			occurredStr string
		)
		if err := rows.Scan(&ev.UserID, &kindStr, &occurredStr); err != nil {
			return nil, fmt.Errorf("scanning punch: %w", err)
		}

		kind, ok := punch.ParseKind(kindStr)
		if !ok {
			return nil, fmt.Errorf("unknown punch kind %q in store", kindStr)
		}
		ev.Kind = kind

		occurred, err := time.Parse(time.RFC3339, occurredStr)
		if err != nil {
			return nil, fmt.Errorf("parsing punch timestamp %q: %w", occurredStr, err)
		}
		ev.OccurredAt = occurred

		events = append(events, ev)
	}

	return events, rows.Err()
}

// DeletePunches removes every event of one user. Maintenance operation,
// used by the mock data seeder before reseeding.
func (db *DB) DeletePunches(ctx context.Context, userID string) (int64, error) {
	result, err := db.ExecContext(ctx, "DELETE FROM punches WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("deleting punches: %w", err)
	}
	return result.RowsAffected()
}
