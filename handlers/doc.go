// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the BJJ journal.

# Handler Types

Each handler is a struct holding the shared db.Store and, for page routes,
the views.Renderer:

  - JournalHandler: list and append journal entries
  - MoveMapHandler: moves, transitions and maps on the canvas
  - ProfileHandler: per-move notes, hit counts and stats
  - CheckInHandler: daily attendance and weekly average

	journalHandler := handlers.NewJournalHandler(store, pages)

# Pages

GET and POST on /, /moves[/{map_id}] and /move_profile/{move_name} answer
with a rendered page. Send Accept: application/json to get the view model as
JSON instead. POST bodies may be url-encoded forms or JSON.

	POST /moves/2  name=Armbar        → AddMove, then the map page
	POST /move_profile/armbar  notes=… hit_count=5

# JSON Endpoints

Canvas and tracking calls take JSON and answer 204 No Content:

	POST /save_position     {id, x, y}
	POST /create_transition {from_move_id, to_move_id}   idempotent
	POST /delete_transition {from_move_id, to_move_id}
	POST /delete_move       {move_id}                    drops its transitions
	POST /delete_map        {map_id}                     drops its moves
	POST /update_hit_count  {move_name}                  +1 and history row
	POST /check_in          {date?}                      idempotent per date

POST /create_map {name} answers 201 {id}; GET /get_check_ins answers
{check_ins, total, avg_per_week}.

A missing key or malformed body is 400; storage failures are logged and
answered with 500 "Database error".
*/
package handlers
