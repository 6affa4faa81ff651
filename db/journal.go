// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/bjjournal/models"
)

// ListJournal returns every entry, newest first. Ordering is by id so that
// entries sharing a timestamp keep insertion order.
func (s *SQLiteStore) ListJournal(ctx context.Context) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(content, ''), CAST(timestamp AS TEXT)
		FROM journal
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var entry models.JournalEntry
		var ts storedTime
		if err := rows.Scan(&entry.ID, &entry.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		if ts.Valid {
			entry.Timestamp = ts.Time
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	return entries, nil
}

// AddJournalEntry stores content with the current server time.
func (s *SQLiteStore) AddJournalEntry(ctx context.Context, content string) (models.JournalEntry, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO journal (content, timestamp) VALUES (?, ?)
	`, content, now.Format(TimestampLayout))
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to insert journal entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to read journal entry id: %w", err)
	}

	return models.JournalEntry{
		ID:        id,
		Content:   content,
		Timestamp: now.Truncate(time.Second),
	}, nil
}
