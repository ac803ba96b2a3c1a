package db

import (
	"context"
	"time"
)

// FeedEvent is one manual feed dispatched through this service. It
// supplements the device-side history, which only reports the most recent
// dispense.
type FeedEvent struct {
	ID        int64
	Source    string // "api" or "mcp"
	Portions  int
	CreatedAt time.Time
}

// FeedEventStore records and lists local feed events.
type FeedEventStore interface {
	Record(ctx context.Context, source string, portions int) error
	ListRecent(ctx context.Context, limit int) ([]FeedEvent, error)
}

// FeedEvents returns a FeedEventStore for this database.
func (db *DB) FeedEvents() FeedEventStore {
	return &feedEventStore{db: db}
}

type feedEventStore struct {
	db *DB
}

func (s *feedEventStore) Record(ctx context.Context, source string, portions int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feed_events (source, portions) VALUES (?, ?)
	`, source, portions)
	return err
}

func (s *feedEventStore) ListRecent(ctx context.Context, limit int) ([]FeedEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, portions, created_at
		FROM feed_events ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []FeedEvent
	for rows.Next() {
		var e FeedEvent
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Source, &e.Portions, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
		events = append(events, e)
	}

	return events, rows.Err()
}
