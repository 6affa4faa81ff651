// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/bjjournal/models"
)

// Storage text layouts. Timestamps are server-local wall clock.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

var ErrNotFound = errors.New("not found")

// CheckInResult tells which branch an idempotent check-in took.
type CheckInResult int

const (
	CheckInCreated CheckInResult = iota
	CheckInExisted
)

func (r CheckInResult) String() string {
	if r == CheckInExisted {
		return "existed"
	}
	return "created"
}

// Store is the shared storage for every handler. All methods are safe for
// concurrent use.
type Store interface {
	Ping(ctx context.Context) error
	Close() error

	// Journal
	ListJournal(ctx context.Context) ([]models.JournalEntry, error)
	AddJournalEntry(ctx context.Context, content string) (models.JournalEntry, error)

	// Move map
	MoveMapView(ctx context.Context, mapID int64) (models.MoveMapPage, error)
	AddMove(ctx context.Context, mapID int64, name string) (int64, error)
	SavePosition(ctx context.Context, id, x, y int64) error
	CreateTransition(ctx context.Context, fromID, toID int64) (bool, error)
	DeleteTransition(ctx context.Context, fromID, toID int64) error
	DeleteMove(ctx context.Context, id int64) error
	CreateMap(ctx context.Context, name string) (int64, error)
	DeleteMap(ctx context.Context, id int64) error

	// Move profiles
	GetOrCreateProfile(ctx context.Context, name string) (models.MoveProfile, bool, error)
	UpdateProfile(ctx context.Context, name, notes string, hitCount int64) error
	IncrementHit(ctx context.Context, name string) error
	ProfileStats(ctx context.Context, name string) (models.ProfileStats, error)

	// Check-ins
	CheckIn(ctx context.Context, date string) (CheckInResult, error)
	ListCheckIns(ctx context.Context) (models.CheckInSummary, error)

	// Row counts per table, for the migrate command
	Counts(ctx context.Context) (map[string]int64, error)
}

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db                  *sql.DB
	now                 func() time.Time
	pruneMapTransitions bool
}

type Option func(*SQLiteStore)

// WithClock replaces time.Now, used for dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// WithMapTransitionPruning makes DeleteMap also remove transitions that
// reference the deleted map's moves.
func WithMapTransitionPruning(enabled bool) Option {
	return func(s *SQLiteStore) { s.pruneMapTransitions = enabled }
}

// Open opens (creating if needed) the SQLite file at path, brings the schema
// up to date and returns a ready Store.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one writer at a time; queue instead of SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return New(conn, opts...), nil
}

// New wraps an already initialised connection.
func New(conn *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{db: conn, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(0)")
	return path + "?" + q.Encode()
}

// DB exposes the underlying handle (tests and the migrate command).
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))
	for _, table := range Tables {
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func (s *SQLiteStore) timestamp() string {
	return s.now().Format(TimestampLayout)
}

func (s *SQLiteStore) today() string {
	return s.now().Format(DateLayout)
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return strings.Contains(se.Error(), "UNIQUE")
		}
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// storedTime scans the timestamp columns, which hold text in older files
// and may come back from the driver as time.Time or NULL.
type storedTime struct {
	Time  time.Time
	Valid bool
}

var storedTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	DateLayout,
}

func (t *storedTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case int64:
		t.Time, t.Valid = time.Unix(v, 0), true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *storedTime) parse(s string) error {
	for _, layout := range storedTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
