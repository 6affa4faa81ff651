// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the SQLite file: schema creation, forward migrations and the
Store used by every handler.

# Opening

Open creates the file if needed, applies the schema and returns a Store:

	store, err := db.Open(ctx, "bjj.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

Any schema error is returned from Open; the server treats it as fatal.

# Tables

  - journal: free-text entries (id, content, timestamp)
  - move_maps: named canvases; "Main Map" is seeded when empty
  - moves: nodes on a map (name, x, y, map_id)
  - transitions: directed edges between moves
  - move_profiles: per-name hit_count and notes (name UNIQUE)
  - hit_history: append-only hit log keyed by move name
  - check_ins: one row per calendar date (date UNIQUE)

# Relationships

	move_maps 1──* moves
	moves     1──* transitions (from_move_id, to_move_id)
	move_profiles.name ·· hit_history.move_name (not enforced)

None of the references cascade in storage. Deletes run children first in a
single transaction: DeleteMove removes transitions then the move, DeleteMap
removes moves then the map. Transitions of a deleted map's moves are kept
unless the store is built WithMapTransitionPruning(true).

# Migrations

CreateSchema adds journal.timestamp and moves.map_id to files created before
those columns existed, checking PRAGMA table_info first.

# Idempotent writes

  - CreateTransition checks the ordered pair before inserting.
  - CheckIn maps a UNIQUE violation to CheckInExisted.
  - GetOrCreateProfile re-reads once when another writer created the row.
*/
package db
