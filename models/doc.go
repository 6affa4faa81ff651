// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain and page types shared by
the store, the handlers and the templates.

# Request Types

Bodies posted by the map canvas and the check-in button. Required keys are
pointers so a missing key can be told apart from a zero value:

  - SavePositionRequest: id, x, y
  - TransitionRequest: from_move_id, to_move_id
  - CreateMapRequest: name
  - DeleteMoveRequest: move_id
  - DeleteMapRequest: map_id
  - HitRequest: move_name
  - CheckInRequest: date (optional, YYYY-MM-DD)

JournalEntryRequest, AddMoveRequest and UpdateProfileRequest back the page
forms and are also accepted as JSON.

# Response Types

  - CreateMapResponse: id
  - CheckInsResponse: check_ins, total, avg_per_week
  - ErrorResponse: error, message

# Domain Types

  - JournalEntry: free-text note with its timestamp
  - MoveMap, Move, Transition: the move graph
  - MoveProfile: per-name hit_count and notes
  - ProfileStats, DailyHits: derived hit statistics
  - CheckInSummary: derived check-in totals

# Page Types

JournalPage, MoveMapPage and MoveProfilePage are the view models rendered
by the templates, or encoded as JSON when the client asks for it.

# Constants

	DefaultMapID    = 1
	SeedMapName     = "Main Map"
	FallbackMapName = "Main"
	DefaultMoveX    = 100
	DefaultMoveY    = 100
*/
package models
