package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Visit is one tracked page request. The IP is hashed before it gets here.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	At        time.Time `json:"timestamp"`
}

// SectionView is one accepted section transition.
type SectionView struct {
	SessionID string    `json:"session_id"`
	Section   string    `json:"section"`
	Source    string    `json:"source"`
	At        time.Time `json:"timestamp"`
}

func (s *Store) stamp(t time.Time) int64 {
	if t.IsZero() {
		t = s.now()
	}
	return toMillis(t)
}

func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.HashedIP == "" {
		return fmt.Errorf("hashed ip is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, created_at) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, s.stamp(v.At),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordSectionView(ctx context.Context, v SectionView) error {
	if v.Section == "" {
		return fmt.Errorf("section is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO section_views (session_id, section, source, created_at) VALUES (?, ?, ?, ?)`,
		v.SessionID, v.Section, v.Source, s.stamp(v.At),
	)
	if err != nil {
		return fmt.Errorf("record section view: %w", err)
	}
	return nil
}

// RecentVisits returns the newest visits first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hashed_ip, user_agent, path, created_at
		 FROM visitors ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.At = fromMillis(at)
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cleanup deletes visits and section views older than before.
func (s *Store) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	cutoff := toMillis(before)
	var total int64
	for _, table := range []string{"visitors", "section_views"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE created_at < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}
