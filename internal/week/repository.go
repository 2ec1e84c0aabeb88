package week

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dinner-daily/internal/menu"
)

// Summary describes an archived week without its contents.
type Summary struct {
	StartDate string
	Name      string
	UpdatedAt time.Time
}

// Repository archives weeks in SQLite, keyed by menu start date.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new week repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores w, replacing any week with the same start date.
func (r *Repository) Save(ctx context.Context, w Week) (string, error) {
	start, err := w.Menu.StartTime()
	if err != nil {
		return "", err
	}
	key := menu.FormatDate(start)

	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("failed to marshal week: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO weeks (start_date, name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(start_date) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		key, w.Menu.Name, string(data), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save week %s: %w", key, err)
	}
	return key, nil
}

// Get returns the week starting on startDate (YYYY-MM-DD), or nil when it
// has not been archived.
func (r *Repository) Get(ctx context.Context, startDate string) (*Week, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM weeks WHERE start_date = ?`, startDate).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get week %s: %w", startDate, err)
	}

	var w Week
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal week %s: %w", startDate, err)
	}
	return &w, nil
}

// List returns archived weeks, newest first.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT start_date, name, updated_at FROM weeks ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.StartDate, &s.Name, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
