// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/bjjournal/db"
	"github.com/danielhkuo/bjjournal/middleware"
	"github.com/danielhkuo/bjjournal/models"
	"github.com/danielhkuo/bjjournal/views"
)

type MoveMapHandler struct {
	store db.Store
	pages *views.Renderer
}

func NewMoveMapHandler(store db.Store, pages *views.Renderer) *MoveMapHandler {
	return &MoveMapHandler{store: store, pages: pages}
}

// mapIDFromPath reads {map_id}, defaulting to the main map. Only
// non-negative integers match.
func mapIDFromPath(r *http.Request) (int64, bool) {
	raw := r.PathValue("map_id")
	if raw == "" {
		return models.DefaultMapID, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// ViewMap handles GET /moves and GET /moves/{map_id}
func (h *MoveMapHandler) ViewMap(w http.ResponseWriter, r *http.Request) {
	mapID, ok := mapIDFromPath(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Map not found")
		return
	}
	h.render(w, r, mapID)
}

// AddMove handles POST /moves and POST /moves/{map_id}
func (h *MoveMapHandler) AddMove(w http.ResponseWriter, r *http.Request) {
	mapID, ok := mapIDFromPath(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Map not found")
		return
	}

	var req models.AddMoveRequest
	err := decodePageForm(r, &req, func(get func(string) (string, bool)) {
		req.Name, _ = get("name")
	})
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if blank(req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	moveID, err := h.store.AddMove(r.Context(), mapID, req.Name)
	if err != nil {
		dbError(w, "failed to insert move", err, "map_id", mapID)
		return
	}

	slog.Info("move created", "move_id", moveID, "map_id", mapID, "name", req.Name)

	h.render(w, r, mapID)
}

func (h *MoveMapHandler) render(w http.ResponseWriter, r *http.Request, mapID int64) {
	page, err := h.store.MoveMapView(r.Context(), mapID)
	if err != nil {
		dbError(w, "failed to load move map", err, "map_id", mapID)
		return
	}

	renderPage(w, r, h.pages, views.PageMoves, page)
}

// SavePosition handles POST /save_position
func (h *MoveMapHandler) SavePosition(w http.ResponseWriter, r *http.Request) {
	var req models.SavePositionRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if req.ID == nil || req.X == nil || req.Y == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id, x and y are required")
		return
	}

	if err := h.store.SavePosition(r.Context(), *req.ID, *req.X, *req.Y); err != nil {
		dbError(w, "failed to save position", err, "move_id", *req.ID)
		return
	}

	middleware.NoContent(w)
}

// CreateTransition handles POST /create_transition
func (h *MoveMapHandler) CreateTransition(w http.ResponseWriter, r *http.Request) {
	var req models.TransitionRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if req.FromMoveID == nil || req.ToMoveID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "from_move_id and to_move_id are required")
		return
	}

	created, err := h.store.CreateTransition(r.Context(), *req.FromMoveID, *req.ToMoveID)
	if err != nil {
		dbError(w, "failed to create transition", err)
		return
	}

	if created {
		slog.Info("transition created", "from", *req.FromMoveID, "to", *req.ToMoveID)
	}

	middleware.NoContent(w)
}

// DeleteTransition handles POST /delete_transition
func (h *MoveMapHandler) DeleteTransition(w http.ResponseWriter, r *http.Request) {
	var req models.TransitionRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if req.FromMoveID == nil || req.ToMoveID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "from_move_id and to_move_id are required")
		return
	}

	if err := h.store.DeleteTransition(r.Context(), *req.FromMoveID, *req.ToMoveID); err != nil {
		dbError(w, "failed to delete transition", err)
		return
	}

	middleware.NoContent(w)
}

// DeleteMove handles POST /delete_move
func (h *MoveMapHandler) DeleteMove(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteMoveRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if req.MoveID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "move_id is required")
		return
	}

	if err := h.store.DeleteMove(r.Context(), *req.MoveID); err != nil {
		dbError(w, "failed to delete move", err, "move_id", *req.MoveID)
		return
	}

	slog.Info("move deleted", "move_id", *req.MoveID)

	middleware.NoContent(w)
}

// CreateMap handles POST /create_map
func (h *MoveMapHandler) CreateMap(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMapRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if req.Name == nil || blank(*req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	mapID, err := h.store.CreateMap(r.Context(), *req.Name)
	if err != nil {
		dbError(w, "failed to create map", err)
		return
	}

	slog.Info("map created", "map_id", mapID, "name", *req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateMapResponse{ID: mapID})
}

// DeleteMap handles POST /delete_map
func (h *MoveMapHandler) DeleteMap(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteMapRequest
	if !parseJSON(w, r, &req) {
		return
	}

	if req.MapID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "map_id is required")
		return
	}

	if err := h.store.DeleteMap(r.Context(), *req.MapID); err != nil {
		dbError(w, "failed to delete map", err, "map_id", *req.MapID)
		return
	}

	slog.Info("map deleted", "map_id", *req.MapID)

	middleware.NoContent(w)
}
