// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/bjjournal/middleware"
	"github.com/danielhkuo/bjjournal/views"
)

// renderPage answers a page route with JSON when the client asks for it and
// HTML otherwise.
func renderPage(w http.ResponseWriter, r *http.Request, pages *views.Renderer, page string, data any) {
	if middleware.WantsJSON(r) || pages == nil {
		middleware.JSONResponse(w, http.StatusOK, data)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Render(w, page, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render page")
	}
}

// decodePageForm fills v from a JSON body, or from url-encoded form fields
// via fromForm. Page forms post url-encoded; scripted clients post JSON.
func decodePageForm(r *http.Request, v any, fromForm func(get func(string) (string, bool))) error {
	if middleware.IsJSONRequest(r) {
		err := middleware.ParseJSONBody(r, v)
		if errors.Is(err, middleware.ErrEmptyBody) {
			return nil
		}
		return err
	}

	if err := r.ParseForm(); err != nil {
		return err
	}
	fromForm(func(key string) (string, bool) {
		if _, ok := r.PostForm[key]; !ok {
			return "", false
		}
		return r.PostForm.Get(key), true
	})
	return nil
}

// parseJSON decodes a JSON endpoint body; an empty body is invalid.
func parseJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// dbError logs a storage failure and answers 500.
func dbError(w http.ResponseWriter, msg string, err error, args ...any) {
	slog.Error(msg, append(args, "error", err)...)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
