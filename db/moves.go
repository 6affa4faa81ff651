// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/bjjournal/models"
)

// MoveMapView gathers everything the move canvas needs. Transitions are not
// filtered by map; the page only draws edges whose endpoints it has.
func (s *SQLiteStore) MoveMapView(ctx context.Context, mapID int64) (models.MoveMapPage, error) {
	page := models.MoveMapPage{CurrentMapID: mapID}

	moves, err := s.movesForMap(ctx, mapID)
	if err != nil {
		return page, err
	}
	page.Moves = moves

	transitions, err := s.listTransitions(ctx)
	if err != nil {
		return page, err
	}
	page.Transitions = transitions

	maps, err := s.listMaps(ctx)
	if err != nil {
		return page, err
	}
	page.Maps = maps

	page.CurrentMapName = models.FallbackMapName
	for _, m := range maps {
		if m.ID == mapID {
			page.CurrentMapName = m.Name
			break
		}
	}

	names, err := s.profileNames(ctx)
	if err != nil {
		return page, err
	}
	page.MoveProfiles = names

	return page, nil
}

func (s *SQLiteStore) movesForMap(ctx context.Context, mapID int64) ([]models.Move, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(x, 0), COALESCE(y, 0)
		FROM moves
		WHERE map_id = ?
		ORDER BY id
	`, mapID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	moves := []models.Move{}
	for rows.Next() {
		m := models.Move{MapID: mapID}
		if err := rows.Scan(&m.ID, &m.Name, &m.X, &m.Y); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moves: %w", err)
	}
	return moves, nil
}

func (s *SQLiteStore) listTransitions(ctx context.Context) ([]models.Transition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT from_move_id, to_move_id FROM transitions ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions: %w", err)
	}
	defer rows.Close()

	transitions := []models.Transition{}
	for rows.Next() {
		var t models.Transition
		var from, to sql.NullInt64
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		t.FromMoveID, t.ToMoveID = from.Int64, to.Int64
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transitions: %w", err)
	}
	return transitions, nil
}

func (s *SQLiteStore) listMaps(ctx context.Context) ([]models.MoveMap, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(name, '') FROM move_maps ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query maps: %w", err)
	}
	defer rows.Close()

	maps := []models.MoveMap{}
	for rows.Next() {
		var m models.MoveMap
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan map: %w", err)
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read maps: %w", err)
	}
	return maps, nil
}

// AddMove places a new move at the default canvas position.
func (s *SQLiteStore) AddMove(ctx context.Context, mapID int64, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO moves (name, x, y, map_id) VALUES (?, ?, ?, ?)
	`, name, models.DefaultMoveX, models.DefaultMoveY, mapID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert move: %w", err)
	}
	return res.LastInsertId()
}

// SavePosition overwrites a move's coordinates. Unknown ids are a no-op.
func (s *SQLiteStore) SavePosition(ctx context.Context, id, x, y int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE moves SET x = ?, y = ? WHERE id = ?
	`, x, y, id)
	if err != nil {
		return fmt.Errorf("failed to update move position: %w", err)
	}
	return nil
}

// CreateTransition inserts the ordered pair unless it already exists and
// reports whether a row was written. (a, b) and (b, a) are distinct edges.
func (s *SQLiteStore) CreateTransition(ctx context.Context, fromID, toID int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM transitions WHERE from_move_id = ? AND to_move_id = ?
	`, fromID, toID).Scan(&existing)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to query transition: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO transitions (from_move_id, to_move_id) VALUES (?, ?)
	`, fromID, toID); err != nil {
		return false, fmt.Errorf("failed to insert transition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transition: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) DeleteTransition(ctx context.Context, fromID, toID int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM transitions WHERE from_move_id = ? AND to_move_id = ?
	`, fromID, toID)
	if err != nil {
		return fmt.Errorf("failed to delete transition: %w", err)
	}
	return nil
}

// DeleteMove removes every transition touching the move, then the move.
func (s *SQLiteStore) DeleteMove(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM transitions WHERE from_move_id = ? OR to_move_id = ?
	`, id, id); err != nil {
		return fmt.Errorf("failed to delete move transitions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM moves WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete move: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move deletion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateMap(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO move_maps (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert map: %w", err)
	}
	return res.LastInsertId()
}

// DeleteMap removes the map's moves and then the map. Transitions between
// those moves survive unless pruning is enabled.
func (s *SQLiteStore) DeleteMap(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if s.pruneMapTransitions {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM transitions
			WHERE from_move_id IN (SELECT id FROM moves WHERE map_id = ?)
			   OR to_move_id IN (SELECT id FROM moves WHERE map_id = ?)
		`, id, id); err != nil {
			return fmt.Errorf("failed to delete map transitions: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM moves WHERE map_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete map moves: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM move_maps WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit map deletion: %w", err)
	}
	return nil
}
