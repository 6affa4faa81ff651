// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/bjjournal/models"
)

// CreateSchema creates all tables, applies the forward migrations and seeds
// the default map. Safe to call multiple times.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for _, m := range migrations {
		if err := addColumnIfMissing(ctx, tx, m.table, m.column, m.definition); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	var maps int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM move_maps`).Scan(&maps); err != nil {
		return fmt.Errorf("failed to count maps: %w", err)
	}
	if maps == 0 {
		if _, err := tx.ExecContext(ctx, `INSERT INTO move_maps (name) VALUES (?)`, models.SeedMapName); err != nil {
			return fmt.Errorf("failed to seed default map: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// migration adds a column that older database files lack.
type migration struct {
	table      string
	column     string
	definition string
}

// SQLite refuses ADD COLUMN with a non-constant default, so the journal
// timestamp is added bare and older rows keep NULL.
var migrations = []migration{
	{table: "journal", column: "timestamp", definition: "DATETIME"},
	{table: "moves", column: "map_id", definition: "INTEGER DEFAULT 1"},
}

func addColumnIfMissing(ctx context.Context, tx *sql.Tx, table, column, definition string) error {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("failed to get table info for %s: %w", table, err)
	}

	exists := false
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan column info for %s: %w", table, err)
		}
		if name == column {
			exists = true
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to read table info for %s: %w", table, err)
	}
	rows.Close()

	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)); err != nil {
		return fmt.Errorf("failed to add column %s to %s: %w", column, table, err)
	}
	return nil
}

// Tables is the list of tables owned by the schema, in creation order.
var Tables = []string{
	"journal",
	"move_maps",
	"moves",
	"move_profiles",
	"transitions",
	"hit_history",
	"check_ins",
}

const schema = `
-- Journal
CREATE TABLE IF NOT EXISTS journal (
    id INTEGER PRIMARY KEY,
    content TEXT,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Maps
CREATE TABLE IF NOT EXISTS move_maps (
    id INTEGER PRIMARY KEY,
    name TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Moves
CREATE TABLE IF NOT EXISTS moves (
    id INTEGER PRIMARY KEY,
    name TEXT,
    x INTEGER,
    y INTEGER,
    map_id INTEGER DEFAULT 1,
    FOREIGN KEY (map_id) REFERENCES move_maps(id)
);

-- Move profiles (name is the natural key)
CREATE TABLE IF NOT EXISTS move_profiles (
    id INTEGER PRIMARY KEY,
    name TEXT UNIQUE,
    hit_count INTEGER DEFAULT 0,
    notes TEXT
);

-- Transitions (ordered pair uniqueness is enforced by the application)
CREATE TABLE IF NOT EXISTS transitions (
    id INTEGER PRIMARY KEY,
    from_move_id INTEGER,
    to_move_id INTEGER,
    FOREIGN KEY (from_move_id) REFERENCES moves(id),
    FOREIGN KEY (to_move_id) REFERENCES moves(id)
);

-- Hit history (append-only)
CREATE TABLE IF NOT EXISTS hit_history (
    id INTEGER PRIMARY KEY,
    move_name TEXT,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (move_name) REFERENCES move_profiles(name)
);

-- Check-ins (one per calendar date)
CREATE TABLE IF NOT EXISTS check_ins (
    id INTEGER PRIMARY KEY,
    date DATE UNIQUE,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// indexes run after migrations since moves.map_id may be new.
const indexes = `
CREATE INDEX IF NOT EXISTS idx_moves_map_id ON moves(map_id);
CREATE INDEX IF NOT EXISTS idx_transitions_pair ON transitions(from_move_id, to_move_id);
CREATE INDEX IF NOT EXISTS idx_hit_history_move ON hit_history(move_name, timestamp);
`
