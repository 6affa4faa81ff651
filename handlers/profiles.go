// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/bjjournal/db"
	"github.com/danielhkuo/bjjournal/middleware"
	"github.com/danielhkuo/bjjournal/models"
	"github.com/danielhkuo/bjjournal/views"
)

type ProfileHandler struct {
	store db.Store
	pages *views.Renderer
}

func NewProfileHandler(store db.Store, pages *views.Renderer) *ProfileHandler {
	return &ProfileHandler{store: store, pages: pages}
}

// ViewProfile handles GET /move_profile/{move_name}
func (h *ProfileHandler) ViewProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("move_name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "move_name is required")
		return
	}
	h.render(w, r, name)
}

// UpdateProfile handles POST /move_profile/{move_name}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("move_name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "move_name is required")
		return
	}

	var req models.UpdateProfileRequest
	var formErr error
	err := decodePageForm(r, &req, func(get func(string) (string, bool)) {
		req.Notes, _ = get("notes")
		raw, ok := get("hit_count")
		if !ok || strings.TrimSpace(raw) == "" {
			return
		}
		req.HitCount, formErr = strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	})
	if err != nil || formErr != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hit_count must be an integer")
		return
	}

	if req.HitCount < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hit_count must not be negative")
		return
	}

	if err := h.store.UpdateProfile(r.Context(), name, req.Notes, req.HitCount); err != nil {
		dbError(w, "failed to update profile", err, "move_name", name)
		return
	}

	slog.Info("profile updated", "move_name", name, "hit_count", req.HitCount)

	h.render(w, r, name)
}

func (h *ProfileHandler) render(w http.ResponseWriter, r *http.Request, name string) {
	profile, created, err := h.store.GetOrCreateProfile(r.Context(), name)
	if err != nil {
		dbError(w, "failed to load profile", err, "move_name", name)
		return
	}
	if created {
		slog.Info("profile created", "move_name", name)
	}

	stats, err := h.store.ProfileStats(r.Context(), name)
	if err != nil {
		dbError(w, "failed to load profile stats", err, "move_name", name)
		return
	}

	renderPage(w, r, h.pages, views.PageMoveProfile, models.MoveProfilePage{
		Profile:      profile,
		ProfileStats: stats,
	})
}

// RecordHit handles POST /update_hit_count
func (h *ProfileHandler) RecordHit(w http.ResponseWriter, r *http.Request) {
	var req models.HitRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if req.MoveName == nil || *req.MoveName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "move_name is required")
		return
	}

	if err := h.store.IncrementHit(r.Context(), *req.MoveName); err != nil {
		dbError(w, "failed to record hit", err, "move_name", *req.MoveName)
		return
	}

	middleware.NoContent(w)
}
