package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Zachkp/portfolio/internal/mailer"
)

// SectionCount is how often a section was shown.
type SectionCount struct {
	Section string `json:"section"`
	Views   int64  `json:"views"`
}

// Stats backs the admin dashboard.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalMessages    int64           `json:"total_messages"`
	FailedMessages   int64           `json:"failed_messages"`
	SectionViews     []SectionCount  `json:"section_views"`
	RecentVisitors   []Visit         `json:"recent_visitors"`
	RecentMessages   []mailer.Record `json:"recent_messages"`
}

// Stats aggregates visitor, section and message counts as of now.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	st := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&st.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&st.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&st.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{toMillis(today)}},
		{&st.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{toMillis(weekAgo)}},
		{&st.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
		{&st.FailedMessages, `SELECT COUNT(*) FROM messages WHERE status = ?`, []any{mailer.StatusFailed}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT section, COUNT(*) FROM section_views GROUP BY section ORDER BY COUNT(*) DESC, section`)
	if err != nil {
		return nil, fmt.Errorf("stats: section views: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc SectionCount
		if err := rows.Scan(&sc.Section, &sc.Views); err != nil {
			return nil, fmt.Errorf("stats: scan section views: %w", err)
		}
		st.SectionViews = append(st.SectionViews, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if st.RecentVisitors, err = s.RecentVisits(ctx, 50); err != nil {
		return nil, err
	}
	if st.RecentMessages, err = s.RecentMessages(ctx, 20); err != nil {
		return nil, err
	}
	return st, nil
}
