// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/bjjournal/db"
	"github.com/danielhkuo/bjjournal/middleware"
	"github.com/danielhkuo/bjjournal/models"
)

type CheckInHandler struct {
	store db.Store
}

func NewCheckInHandler(store db.Store) *CheckInHandler {
	return &CheckInHandler{store: store}
}

// CheckIn handles POST /check_in
func (h *CheckInHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req models.CheckInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, middleware.ErrEmptyBody) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var date string
	if req.Date != nil {
		date = *req.Date
	}
	if date != "" {
		if _, err := time.Parse(db.DateLayout, date); err != nil || len(date) != len(db.DateLayout) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	result, err := h.store.CheckIn(r.Context(), date)
	if err != nil {
		dbError(w, "failed to check in", err)
		return
	}

	slog.Info("check-in recorded", "date", date, "result", result.String())

	middleware.NoContent(w)
}

// ListCheckIns handles GET /get_check_ins
func (h *CheckInHandler) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.ListCheckIns(r.Context())
	if err != nil {
		dbError(w, "failed to list check-ins", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckInsResponse{
		CheckIns:   summary.Dates,
		Total:      summary.Total,
		AvgPerWeek: summary.AvgPerWeek,
	})
}
