// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/bjjournal/models"
)

// fixedNow is the clock used by tests that depend on "today".
var fixedNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.Local)

func openTestStore(t *testing.T, opts ...Option) *SQLiteStore {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "bjj.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *SQLiteStore, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow(query, args...).Scan(&n))
	return n
}

func TestOpen_SeedsMainMapOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bjj.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// reopening must not seed a second map
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	var id int64
	var name string
	require.NoError(t, s.DB().QueryRow(`SELECT id, name FROM move_maps`).Scan(&id, &name))
	assert.Equal(t, models.DefaultMapID, id)
	assert.Equal(t, models.SeedMapName, name)
	assert.Equal(t, 1, countRows(t, s, `SELECT COUNT(*) FROM move_maps`))
}

func TestCreateSchema_MigratesLegacyFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	legacy, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = legacy.Exec(`
		CREATE TABLE journal (id INTEGER PRIMARY KEY, content TEXT);
		CREATE TABLE moves (id INTEGER PRIMARY KEY, name TEXT, x INTEGER, y INTEGER);
		INSERT INTO journal (content) VALUES ('old entry');
		INSERT INTO moves (name, x, y) VALUES ('armbar', 10, 20);
	`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	s, err := Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.ListJournal(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "old entry", entries[0].Content)
	assert.True(t, entries[0].Timestamp.IsZero())

	view, err := s.MoveMapView(ctx, models.DefaultMapID)
	require.NoError(t, err)
	require.Len(t, view.Moves, 1)
	assert.Equal(t, "armbar", view.Moves[0].Name)

	// running the schema again is a no-op
	require.NoError(t, CreateSchema(ctx, s.DB()))
}

func TestJournal_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, content := range []string{"first", "second", "third"} {
		_, err := s.AddJournalEntry(ctx, content)
		require.NoError(t, err)
	}

	entries, err := s.ListJournal(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Content)
	assert.Equal(t, "first", entries[2].Content)
	// identical timestamps, still ordered by id
	assert.True(t, entries[0].Timestamp.Equal(entries[2].Timestamp))
	assert.True(t, fixedNow.Equal(entries[0].Timestamp))
}

func TestCreateTransition_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, err := s.AddMove(ctx, models.DefaultMapID, "closed guard")
	require.NoError(t, err)
	b, err := s.AddMove(ctx, models.DefaultMapID, "armbar")
	require.NoError(t, err)

	created, err := s.CreateTransition(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.CreateTransition(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, 1, countRows(t, s, `SELECT COUNT(*) FROM transitions WHERE from_move_id = ? AND to_move_id = ?`, a, b))

	// the reverse direction is a separate edge
	created, err = s.CreateTransition(ctx, b, a)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, countRows(t, s, `SELECT COUNT(*) FROM transitions`))
}

func TestDeleteTransition_ExactPair(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.CreateTransition(ctx, 1, 2)
	require.NoError(t, err)
	_, err = s.CreateTransition(ctx, 2, 1)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTransition(ctx, 1, 2))
	require.NoError(t, s.DeleteTransition(ctx, 1, 2))

	view, err := s.MoveMapView(ctx, models.DefaultMapID)
	require.NoError(t, err)
	assert.Equal(t, []models.Transition{{FromMoveID: 2, ToMoveID: 1}}, view.Transitions)
}

func TestDeleteMove_CascadesTransitions(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, _ := s.AddMove(ctx, models.DefaultMapID, "mount")
	b, _ := s.AddMove(ctx, models.DefaultMapID, "americana")
	c, _ := s.AddMove(ctx, models.DefaultMapID, "back take")

	for _, pair := range [][2]int64{{a, b}, {b, c}, {c, a}, {a, c}} {
		_, err := s.CreateTransition(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteMove(ctx, a))

	view, err := s.MoveMapView(ctx, models.DefaultMapID)
	require.NoError(t, err)
	require.Len(t, view.Moves, 2)
	for _, tr := range view.Transitions {
		assert.NotEqual(t, a, tr.FromMoveID)
		assert.NotEqual(t, a, tr.ToMoveID)
	}
	assert.Equal(t, []models.Transition{{FromMoveID: b, ToMoveID: c}}, view.Transitions)
}

func TestDeleteMap(t *testing.T) {
	tests := []struct {
		name            string
		prune           bool
		wantTransitions int
	}{
		{name: "keeps orphaned transitions by default", prune: false, wantTransitions: 1},
		{name: "prunes transitions when enabled", prune: true, wantTransitions: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := openTestStore(t, WithMapTransitionPruning(tt.prune))

			mapID, err := s.CreateMap(ctx, "Guard Passing")
			require.NoError(t, err)
			a, _ := s.AddMove(ctx, mapID, "knee slice")
			b, _ := s.AddMove(ctx, mapID, "side control")
			_, err = s.CreateTransition(ctx, a, b)
			require.NoError(t, err)

			keep, _ := s.AddMove(ctx, models.DefaultMapID, "untouched")

			require.NoError(t, s.DeleteMap(ctx, mapID))

			assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM moves WHERE map_id = ?`, mapID))
			assert.Equal(t, 0, countRows(t, s, `SELECT COUNT(*) FROM move_maps WHERE id = ?`, mapID))
			assert.Equal(t, 1, countRows(t, s, `SELECT COUNT(*) FROM moves WHERE id = ?`, keep))
			assert.Equal(t, tt.wantTransitions, countRows(t, s, `SELECT COUNT(*) FROM transitions`))
		})
	}
}

func TestMoveMapView(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	mapID, err := s.CreateMap(ctx, "Guard Passing")
	require.NoError(t, err)

	id, err := s.AddMove(ctx, mapID, "toreando")
	require.NoError(t, err)
	require.NoError(t, s.SavePosition(ctx, id, -40, 9000))
	_, err = s.AddMove(ctx, models.DefaultMapID, "elsewhere")
	require.NoError(t, err)
	require.NoError(t, s.UpdateProfile(ctx, "toreando", "", 0))
	require.NoError(t, s.UpdateProfile(ctx, "armbar", "", 0))

	view, err := s.MoveMapView(ctx, mapID)
	require.NoError(t, err)
	assert.Equal(t, "Guard Passing", view.CurrentMapName)
	assert.Equal(t, []models.Move{{ID: id, Name: "toreando", X: -40, Y: 9000, MapID: mapID}}, view.Moves)
	assert.Len(t, view.Maps, 2)
	assert.Equal(t, []string{"armbar", "toreando"}, view.MoveProfiles)

	missing, err := s.MoveMapView(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, models.FallbackMapName, missing.CurrentMapName)
	assert.Empty(t, missing.Moves)
	assert.Equal(t, 2, countRows(t, s, `SELECT COUNT(*) FROM move_maps`))
}

func TestAddMove_DefaultPosition(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.AddMove(ctx, models.DefaultMapID, "kimura")
	require.NoError(t, err)

	view, err := s.MoveMapView(ctx, models.DefaultMapID)
	require.NoError(t, err)
	require.Len(t, view.Moves, 1)
	assert.Equal(t, id, view.Moves[0].ID)
	assert.EqualValues(t, models.DefaultMoveX, view.Moves[0].X)
	assert.EqualValues(t, models.DefaultMoveY, view.Moves[0].Y)
}

func TestGetOrCreateProfile(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	p, created, err := s.GetOrCreateProfile(ctx, "triangle")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "triangle", p.Name)
	assert.Zero(t, p.HitCount)
	assert.Empty(t, p.Notes)

	again, created, err := s.GetOrCreateProfile(ctx, "triangle")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p, again)
}

func TestGetOrCreateProfile_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := s.GetOrCreateProfile(ctx, "omoplata"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("GetOrCreateProfile failed: %v", err)
	}
	assert.Equal(t, 1, countRows(t, s, `SELECT COUNT(*) FROM move_profiles WHERE name = ?`, "omoplata"))
}

func TestUpdateProfile_ReplacesValues(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.IncrementHit(ctx, "armbar"))
	before, _, err := s.GetOrCreateProfile(ctx, "armbar")
	require.NoError(t, err)

	require.NoError(t, s.UpdateProfile(ctx, "armbar", "tight", 5))
	after, _, err := s.GetOrCreateProfile(ctx, "armbar")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, int64(5), after.HitCount)
	assert.Equal(t, "tight", after.Notes)

	// replace, not increment
	require.NoError(t, s.UpdateProfile(ctx, "armbar", "", 2))
	after, _, err = s.GetOrCreateProfile(ctx, "armbar")
	require.NoError(t, err)
	assert.Equal(t, int64(2), after.HitCount)
	assert.Empty(t, after.Notes)
}

func TestIncrementHit_CountsMatchHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, s.IncrementHit(ctx, "heel hook"))
	}

	p, created, err := s.GetOrCreateProfile(ctx, "heel hook")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(n), p.HitCount)
	assert.Equal(t, n, countRows(t, s, `SELECT COUNT(*) FROM hit_history WHERE move_name = ?`, "heel hook"))

	stats, err := s.ProfileStats(ctx, "heel hook")
	require.NoError(t, err)
	assert.Equal(t, n, stats.TodayHits)
	assert.Equal(t, n, stats.DailyBest)
	assert.Equal(t, []models.DailyHits{{Date: "2024-03-15", Count: n}}, stats.History)
}

func TestProfileStats(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	insertHits := func(name, ts string, n int) {
		for i := 0; i < n; i++ {
			_, err := s.DB().Exec(`INSERT INTO hit_history (move_name, timestamp) VALUES (?, ?)`, name, ts)
			require.NoError(t, err)
		}
	}
	insertHits("armbar", "2024-03-01 10:00:00", 3)
	insertHits("armbar", "2024-03-02 09:15:00.123456", 5)
	insertHits("armbar", "2024-03-15 07:00:00", 2)
	insertHits("kimura", "2024-03-15 07:00:00", 9)

	stats, err := s.ProfileStats(ctx, "armbar")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.DailyBest)
	assert.Equal(t, 2, stats.TodayHits)
	assert.Equal(t, []models.DailyHits{
		{Date: "2024-03-01", Count: 3},
		{Date: "2024-03-02", Count: 5},
		{Date: "2024-03-15", Count: 2},
	}, stats.History)

	empty, err := s.ProfileStats(ctx, "never hit")
	require.NoError(t, err)
	assert.Zero(t, empty.DailyBest)
	assert.Zero(t, empty.TodayHits)
	assert.Empty(t, empty.History)
}

func TestCheckIn_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	res, err := s.CheckIn(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, CheckInCreated, res)

	res, err = s.CheckIn(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, CheckInExisted, res)

	assert.Equal(t, 1, countRows(t, s, `SELECT COUNT(*) FROM check_ins WHERE date = ?`, "2024-01-01"))
}

func TestCheckIn_DefaultsToToday(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.CheckIn(ctx, "")
	require.NoError(t, err)

	summary, err := s.ListCheckIns(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15"}, summary.Dates)
}

func TestListCheckIns(t *testing.T) {
	tests := []struct {
		name      string
		dates     []string
		wantDates []string
		wantTotal int
		wantAvg   float64
	}{
		{
			name:      "no check-ins",
			wantDates: []string{},
		},
		{
			name:      "single check-in floors to one week",
			dates:     []string{"2024-01-01"},
			wantDates: []string{"2024-01-01"},
			wantTotal: 1,
			wantAvg:   1,
		},
		{
			name:      "exactly one week apart",
			dates:     []string{"2024-01-08", "2024-01-01"},
			wantDates: []string{"2024-01-01", "2024-01-08"},
			wantTotal: 2,
			wantAvg:   2.0,
		},
		{
			name:      "three weeks span",
			dates:     []string{"2024-01-01", "2024-01-03", "2024-01-10", "2024-01-22"},
			wantDates: []string{"2024-01-01", "2024-01-03", "2024-01-10", "2024-01-22"},
			wantTotal: 4,
			wantAvg:   1.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := openTestStore(t)
			for _, d := range tt.dates {
				_, err := s.CheckIn(ctx, d)
				require.NoError(t, err)
			}

			summary, err := s.ListCheckIns(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDates, summary.Dates)
			assert.Equal(t, tt.wantTotal, summary.Total)
			assert.InDelta(t, tt.wantAvg, summary.AvgPerWeek, 1e-9)
		})
	}
}

func TestAveragePerWeek_HalfRoundsUp(t *testing.T) {
	// five check-ins over exactly four weeks is 1.25 per week
	dates := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}

	avg, err := AveragePerWeek(dates)
	require.NoError(t, err)
	assert.InDelta(t, 1.3, avg, 1e-9)
}

func TestAveragePerWeek_InvalidDate(t *testing.T) {
	_, err := AveragePerWeek([]string{"2024-01-01", "not-a-date"})
	assert.Error(t, err)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.AddJournalEntry(ctx, "rolled 5 rounds")
	require.NoError(t, err)

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, len(Tables))
	assert.Equal(t, int64(1), counts["journal"])
	assert.Equal(t, int64(1), counts["move_maps"])
	assert.Equal(t, int64(0), counts["check_ins"])
}

func TestStoredTimeScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    time.Time
		valid   bool
		wantErr bool
	}{
		{name: "nil", src: nil},
		{name: "seconds", src: "2024-03-15 18:30:00", want: fixedNow, valid: true},
		{name: "fractional bytes", src: []byte("2024-03-15 18:30:00.000000"), want: fixedNow, valid: true},
		{name: "driver time", src: fixedNow, want: fixedNow, valid: true},
		{name: "garbage", src: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts storedTime
			err := ts.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, ts.Valid)
			assert.True(t, tt.want.Equal(ts.Time))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.DB().ExecContext(ctx, `INSERT INTO check_ins (date) VALUES ('2024-01-01')`)
	require.NoError(t, err)
	_, err = s.DB().ExecContext(ctx, `INSERT INTO check_ins (date) VALUES ('2024-01-01')`)
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
}
