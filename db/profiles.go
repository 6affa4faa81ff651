// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/bjjournal/models"
)

func (s *SQLiteStore) profileNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM move_profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan profile name: %w", err)
		}
		if name.Valid {
			names = append(names, name.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile names: %w", err)
	}
	return names, nil
}

func (s *SQLiteStore) findProfile(ctx context.Context, name string) (models.MoveProfile, error) {
	var p models.MoveProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(hit_count, 0), COALESCE(notes, '')
		FROM move_profiles
		WHERE name = ?
	`, name).Scan(&p.ID, &p.Name, &p.HitCount, &p.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("failed to query profile: %w", err)
	}
	return p, nil
}

// GetOrCreateProfile returns the profile for name, creating an empty one if
// needed. The bool reports whether this call created it. A concurrent
// creator winning the insert is resolved by fetching once more.
func (s *SQLiteStore) GetOrCreateProfile(ctx context.Context, name string) (models.MoveProfile, bool, error) {
	p, err := s.findProfile(ctx, name)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return p, false, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO move_profiles (name, hit_count, notes) VALUES (?, 0, '')
	`, name)
	created := true
	if err != nil {
		if !IsUniqueViolation(err) {
			return p, false, fmt.Errorf("failed to insert profile: %w", err)
		}
		created = false
	}

	p, err = s.findProfile(ctx, name)
	if err != nil {
		return p, false, err
	}
	return p, created, nil
}

// UpdateProfile replaces notes and hit_count for name, creating the profile
// if it does not exist.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, name, notes string, hitCount int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO move_profiles (name, notes, hit_count) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			notes = excluded.notes,
			hit_count = excluded.hit_count
	`, name, notes, hitCount)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// IncrementHit bumps hit_count by one (creating the profile at 1) and logs
// the hit to history in the same transaction.
func (s *SQLiteStore) IncrementHit(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO move_profiles (name, hit_count, notes) VALUES (?, 1, '')
		ON CONFLICT(name) DO UPDATE SET hit_count = COALESCE(hit_count, 0) + 1
	`, name); err != nil {
		return fmt.Errorf("failed to increment hit count: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO hit_history (move_name, timestamp) VALUES (?, ?)
	`, name, s.timestamp()); err != nil {
		return fmt.Errorf("failed to log hit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit hit: %w", err)
	}
	return nil
}

// ProfileStats derives today's hits, the best single day and the per-day
// series from hit_history.
func (s *SQLiteStore) ProfileStats(ctx context.Context, name string) (models.ProfileStats, error) {
	stats := models.ProfileStats{History: []models.DailyHits{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date(timestamp) AS day, COUNT(*)
		FROM hit_history
		WHERE move_name = ? AND date(timestamp) IS NOT NULL
		GROUP BY day
		ORDER BY day
	`, name)
	if err != nil {
		return stats, fmt.Errorf("failed to query hit history: %w", err)
	}
	defer rows.Close()

	today := s.today()
	for rows.Next() {
		var d models.DailyHits
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return stats, fmt.Errorf("failed to scan hit history: %w", err)
		}
		if d.Count > stats.DailyBest {
			stats.DailyBest = d.Count
		}
		if d.Date == today {
			stats.TodayHits = d.Count
		}
		stats.History = append(stats.History, d)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("failed to read hit history: %w", err)
	}

	return stats, nil
}
