// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/bjjournal/db"
	"github.com/danielhkuo/bjjournal/handlers"
	"github.com/danielhkuo/bjjournal/middleware"
	"github.com/danielhkuo/bjjournal/views"
)

func NewRouter(store db.Store, pages *views.Renderer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	journalHandler := handlers.NewJournalHandler(store, pages)
	moveHandler := handlers.NewMoveMapHandler(store, pages)
	profileHandler := handlers.NewProfileHandler(store, pages)
	checkInHandler := handlers.NewCheckInHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Canvas script
	mux.Handle("GET /static/", http.StripPrefix("/static/", views.Static()))

	// Journal
	mux.HandleFunc("GET /{$}", middleware.WithLogging(journalHandler.ListEntries))
	mux.HandleFunc("POST /{$}", middleware.WithLogging(journalHandler.AddEntry))

	// Move map pages
	mux.HandleFunc("GET /moves", middleware.WithLogging(moveHandler.ViewMap))
	mux.HandleFunc("POST /moves", middleware.WithLogging(moveHandler.AddMove))
	mux.HandleFunc("GET /moves/{map_id}", middleware.WithLogging(moveHandler.ViewMap))
	mux.HandleFunc("POST /moves/{map_id}", middleware.WithLogging(moveHandler.AddMove))

	// Canvas operations
	mux.HandleFunc("POST /save_position", middleware.WithLogging(moveHandler.SavePosition))
	mux.HandleFunc("POST /create_transition", middleware.WithLogging(moveHandler.CreateTransition))
	mux.HandleFunc("POST /delete_transition", middleware.WithLogging(moveHandler.DeleteTransition))
	mux.HandleFunc("POST /delete_move", middleware.WithLogging(moveHandler.DeleteMove))
	mux.HandleFunc("POST /create_map", middleware.WithLogging(moveHandler.CreateMap))
	mux.HandleFunc("POST /delete_map", middleware.WithLogging(moveHandler.DeleteMap))

	// Move profiles
	mux.HandleFunc("GET /move_profile/{move_name}", middleware.WithLogging(profileHandler.ViewProfile))
	mux.HandleFunc("POST /move_profile/{move_name}", middleware.WithLogging(profileHandler.UpdateProfile))
	mux.HandleFunc("POST /update_hit_count", middleware.WithLogging(profileHandler.RecordHit))

	// Check-ins
	mux.HandleFunc("POST /check_in", middleware.WithLogging(checkInHandler.CheckIn))
	mux.HandleFunc("GET /get_check_ins", middleware.WithLogging(checkInHandler.ListCheckIns))

	return mux
}
