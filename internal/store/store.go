// Package store persists privacy-safe visit and event counters in sqlite.
// No chat transcripts or contact form contents are ever written.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT NOT NULL,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_ts ON visitors(ts);
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	outcome TEXT NOT NULL,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind, outcome);
`

type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type EventStat struct {
	Kind    string `json:"kind"`
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

type Stats struct {
	TotalVisitors    int64       `json:"total_visitors"`
	UniqueVisitors   int64       `json:"unique_visitors"`
	VisitorsToday    int64       `json:"visitors_today"`
	VisitorsThisWeek int64       `json:"visitors_this_week"`
	TopPaths         []PathStat  `json:"top_paths"`
	Events           []EventStat `json:"events"`
	RecentVisitors   []Visitor   `json:"recent_visitors"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path. Use ":memory:" for a
// throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a second connection to :memory: would see an empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Info().Str("path", path).Msg("analytics store ready")
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		hashedIP, userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordEvent counts an interaction such as a chat reply or a contact
// submission. Only the kind and outcome are kept.
func (s *Store) RecordEvent(ctx context.Context, kind, outcome string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (kind, outcome, ts) VALUES (?, ?, ?)`,
		kind, outcome, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Unix()
	weekAgo := now.AddDate(0, 0, -7).Unix()

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{midnight}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{weekAgo}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			rows.Close()
			return nil, fmt.Errorf("top paths: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT kind, outcome, COUNT(*)
		FROM events
		GROUP BY kind, outcome
		ORDER BY kind, outcome`)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	for rows.Next() {
		var e EventStat
		if err := rows.Scan(&e.Kind, &e.Outcome, &e.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("events: %w", err)
		}
		stats.Events = append(stats.Events, e)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}

	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentVisitors returns the newest visits first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), path, ts
		FROM visitors
		ORDER BY ts DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cleanup deletes visits and events older than the retention window.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention).Unix()
	var total int64
	for _, q := range []string{
		`DELETE FROM visitors WHERE ts < ?`,
		`DELETE FROM events WHERE ts < ?`,
	} {
		res, err := s.db.ExecContext(ctx, q, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup: %w", err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if total > 0 {
		log.Info().Int64("rows", total).Dur("retention", retention).Msg("privacy cleanup removed old records")
	}
	return total, nil
}
