package sqlite

import (
	"context"
	"fmt"

	"github.com/Zachkp/portfolio/internal/mailer"
)

var _ mailer.MessageLog = (*Store)(nil)

func (s *Store) RecordMessage(ctx context.Context, r mailer.Record) error {
	if r.ID == "" {
		return fmt.Errorf("message id is required")
	}
	at := s.stamp(r.CreatedAt)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, body, status, error, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Message.Name, r.Message.Email, r.Message.Message, r.Status, r.Error, at, at,
	)
	if err != nil {
		return fmt.Errorf("record message: %w", err)
	}
	return nil
}

func (s *Store) MarkMessage(ctx context.Context, id, status, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		status, errMsg, toMillis(s.now()), id,
	)
	if err != nil {
		return fmt.Errorf("mark message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("mark message %s: %w", id, ErrNotFound)
	}
	return nil
}

// RecentMessages returns the newest messages first.
func (s *Store) RecentMessages(ctx context.Context, limit int) ([]mailer.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, body, status, error, created_at
		 FROM messages ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []mailer.Record
	for rows.Next() {
		var r mailer.Record
		var at int64
		if err := rows.Scan(&r.ID, &r.Message.Name, &r.Message.Email, &r.Message.Message, &r.Status, &r.Error, &at); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		r.CreatedAt = fromMillis(at)
		out = append(out, r)
	}
	return out, rows.Err()
}
