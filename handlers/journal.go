// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/bjjournal/db"
	"github.com/danielhkuo/bjjournal/middleware"
	"github.com/danielhkuo/bjjournal/models"
	"github.com/danielhkuo/bjjournal/views"
)

type JournalHandler struct {
	store db.Store
	pages *views.Renderer
}

func NewJournalHandler(store db.Store, pages *views.Renderer) *JournalHandler {
	return &JournalHandler{store: store, pages: pages}
}

// ListEntries handles GET /
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	h.render(w, r)
}

// AddEntry handles POST /
func (h *JournalHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req models.JournalEntryRequest
	err := decodePageForm(r, &req, func(get func(string) (string, bool)) {
		req.Content, _ = get("content")
	})
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if blank(req.Content) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	entry, err := h.store.AddJournalEntry(r.Context(), req.Content)
	if err != nil {
		dbError(w, "failed to insert journal entry", err)
		return
	}

	slog.Info("journal entry created", "entry_id", entry.ID)

	h.render(w, r)
}

func (h *JournalHandler) render(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListJournal(r.Context())
	if err != nil {
		dbError(w, "failed to list journal", err)
		return
	}

	renderPage(w, r, h.pages, views.PageJournal, models.JournalPage{Entries: entries})
}
