// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the BJJ journal.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, pages)

# Endpoints

Health and assets:

	GET /health    - Pings the store, "OK"
	GET /static/*  - Embedded canvas script

Pages (HTML, or JSON with Accept: application/json):

	GET|POST /                          - Journal
	GET|POST /moves, /moves/{map_id}     - Move map
	GET|POST /move_profile/{move_name}   - Move profile and stats

Canvas (JSON in, 204 out):

	POST /save_position
	POST /create_transition
	POST /delete_transition
	POST /delete_move
	POST /delete_map
	POST /create_map        - 201 {id}

Tracking:

	POST /update_hit_count  - 204
	POST /check_in          - 204
	GET  /get_check_ins     - {check_ins, total, avg_per_week}

The journal is registered on "/{$}" so unknown paths fall through to 404.

# Handler Initialization

	journalHandler := handlers.NewJournalHandler(store, pages)
	moveHandler := handlers.NewMoveMapHandler(store, pages)
	profileHandler := handlers.NewProfileHandler(store, pages)
	checkInHandler := handlers.NewCheckInHandler(store)

All handlers share the one store opened at startup.
*/
package router
