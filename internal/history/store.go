// Package history keeps a log of what was published where.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Target is a service menus are published to.
type Target string

const (
	TargetTrello Target = "trello"
	TargetGhost  Target = "ghost"
)

// Publication records one card or post created for a menu.
type Publication struct {
	Target      Target
	Menu        string
	RemoteID    string
	URL         string
	PublishedAt time.Time
}

// Store handles persistence of publications to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a publication. A zero PublishedAt means now.
func (s *Store) Record(ctx context.Context, p Publication) error {
	ts := p.PublishedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO publications (target, menu, remote_id, url, published_at) VALUES (?, ?, ?, ?, ?)`,
		string(p.Target), p.Menu, p.RemoteID, p.URL, ts.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record publication: %w", err)
	}
	return nil
}

// Recent returns up to limit publications, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Publication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT target, menu, remote_id, url, published_at FROM publications ORDER BY published_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list publications: %w", err)
	}
	defer rows.Close()

	var out []Publication
	for rows.Next() {
		var p Publication
		var target string
		if err := rows.Scan(&target, &p.Menu, &p.RemoteID, &p.URL, &p.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		p.Target = Target(target)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Cleanup removes publications older than the given number of days and
// reports how many were removed.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM publications WHERE published_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up publications: %w", err)
	}
	return res.RowsAffected()
}
