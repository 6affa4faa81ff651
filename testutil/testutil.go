// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/bjjournal/cliparse"
	"github.com/danielhkuo/bjjournal/db"
	"github.com/danielhkuo/bjjournal/views"
)

// FixedNow is the clock used by test stores and renderers.
var FixedNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.Local)

// SetupTestStore opens a fresh SQLite file under t.TempDir with the full
// schema and a clock frozen at FixedNow. Extra options apply after the clock.
func SetupTestStore(t *testing.T, opts ...db.Option) *db.SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bjj.db")
	opts = append([]db.Option{db.WithClock(func() time.Time { return FixedNow })}, opts...)

	store, err := db.Open(context.Background(), path, opts...)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// SetupTestPages parses the embedded templates with the FixedNow clock
func SetupTestPages(t *testing.T) *views.Renderer {
	t.Helper()

	pages, err := views.New(views.WithClock(func() time.Time { return FixedNow }))
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	return pages
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            5000,
		DatabasePath:    "bjj.db",
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: time.Second,
	}
}

// CreateTestMap creates a map and returns its ID
func CreateTestMap(t *testing.T, store db.Store, name string) int64 {
	t.Helper()

	id, err := store.CreateMap(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test map: %v", err)
	}
	return id
}

// CreateTestMove adds a move to a map and returns its ID
func CreateTestMove(t *testing.T, store db.Store, mapID int64, name string) int64 {
	t.Helper()

	id, err := store.AddMove(context.Background(), mapID, name)
	if err != nil {
		t.Fatalf("Failed to create test move: %v", err)
	}
	return id
}

// CreateTestTransition links two moves
func CreateTestTransition(t *testing.T, store db.Store, fromID, toID int64) {
	t.Helper()

	if _, err := store.CreateTransition(context.Background(), fromID, toID); err != nil {
		t.Fatalf("Failed to create test transition: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var raw []byte
		if s, ok := body.(string); ok {
			raw = []byte(s)
		} else {
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a url-encoded form request, as a browser page posts
func MakeFormRequest(method, path string, form url.Values, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AcceptJSON asks page routes for the JSON view model
var AcceptJSON = map[string]string{"Accept": "application/json"}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
