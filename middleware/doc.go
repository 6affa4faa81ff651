// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /journal", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).
Every request carries an X-Request-ID, taken from the client when present and
generated otherwise. Handlers read it with RequestID(r.Context()).

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST and OPTIONS with Content-Type, Accept and X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.NoContent(w)

Parse JSON request bodies:

	var req models.TransitionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ParseJSONBody returns ErrEmptyBody for a missing or empty body so callers can
treat an absent payload as "use defaults".

WantsJSON reports whether a page request asked for JSON via Accept.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP; used in request logs.
*/
package middleware
