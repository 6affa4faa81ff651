package models

import "time"

// Move placement defaults
const (
	DefaultMoveX = 100
	DefaultMoveY = 100
)

// DefaultMapID is the map used when a request names none.
const DefaultMapID int64 = 1

// Map naming
const (
	SeedMapName     = "Main Map"
	FallbackMapName = "Main"
)

// Request types

type JournalEntryRequest struct {
	Content string `json:"content"`
}

type AddMoveRequest struct {
	Name string `json:"name"`
}

type SavePositionRequest struct {
	ID *int64 `json:"id"`
	X  *int64 `json:"x"`
	Y  *int64 `json:"y"`
}

// Used by both /create_transition and /delete_transition
type TransitionRequest struct {
	FromMoveID *int64 `json:"from_move_id"`
	ToMoveID   *int64 `json:"to_move_id"`
}

type CreateMapRequest struct {
	Name *string `json:"name"`
}

type DeleteMoveRequest struct {
	MoveID *int64 `json:"move_id"`
}

type DeleteMapRequest struct {
	MapID *int64 `json:"map_id"`
}

type UpdateProfileRequest struct {
	Notes    string `json:"notes"`
	HitCount int64  `json:"hit_count"`
}

type HitRequest struct {
	MoveName *string `json:"move_name"`
}

// Date is YYYY-MM-DD; empty means today
type CheckInRequest struct {
	Date *string `json:"date"`
}

// Response types

type CreateMapResponse struct {
	ID int64 `json:"id"`
}

type CheckInsResponse struct {
	CheckIns   []string `json:"check_ins"`
	Total      int      `json:"total"`
	AvgPerWeek float64  `json:"avg_per_week"`
}

// Domain types

type JournalEntry struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type MoveMap struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Move struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	X     int64  `json:"x"`
	Y     int64  `json:"y"`
	MapID int64  `json:"map_id"`
}

type Transition struct {
	FromMoveID int64 `json:"from_move_id"`
	ToMoveID   int64 `json:"to_move_id"`
}

type MoveProfile struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	HitCount int64  `json:"hit_count"`
	Notes    string `json:"notes"`
}

// One point of the per-day hit trend
type DailyHits struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ProfileStats struct {
	TodayHits int         `json:"today_hits"`
	DailyBest int         `json:"daily_best"`
	History   []DailyHits `json:"hit_history"`
}

// CheckInSummary is the derived view over all check-ins.
type CheckInSummary struct {
	Dates      []string
	Total      int
	AvgPerWeek float64
}

// Page view models

type JournalPage struct {
	Entries []JournalEntry `json:"entries"`
}

type MoveMapPage struct {
	Moves          []Move       `json:"moves"`
	Transitions    []Transition `json:"transitions"`
	Maps           []MoveMap    `json:"maps"`
	CurrentMapID   int64        `json:"current_map_id"`
	CurrentMapName string       `json:"current_map_name"`
	MoveProfiles   []string     `json:"move_profiles"`
}

type MoveProfilePage struct {
	Profile MoveProfile `json:"profile"`
	ProfileStats
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
