// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/bjjournal/models"
	"github.com/danielhkuo/bjjournal/testutil"
)

func viewProfile(t *testing.T, handler *ProfileHandler, name string) models.MoveProfilePage {
	t.Helper()

	req := testutil.MakeRequest("GET", "/move_profile/"+url.PathEscape(name), nil, testutil.AcceptJSON)
	req.SetPathValue("move_name", name)
	w := httptest.NewRecorder()
	handler.ViewProfile(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var page models.MoveProfilePage
	testutil.AssertJSON(t, w, &page)
	return page
}

func recordHit(t *testing.T, handler *ProfileHandler, name string) {
	t.Helper()

	w := httptest.NewRecorder()
	handler.RecordHit(w, testutil.MakeRequest("POST", "/update_hit_count", models.HitRequest{MoveName: &name}, nil))
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestViewProfile(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewProfileHandler(store, testutil.SetupTestPages(t))

	t.Run("creates missing profile", func(t *testing.T) {
		page := viewProfile(t, handler, "Triangle")
		if page.Profile.Name != "Triangle" || page.Profile.HitCount != 0 || page.Profile.Notes != "" {
			t.Errorf("Expected empty profile, got %+v", page.Profile)
		}
		if page.DailyBest != 0 || page.TodayHits != 0 || len(page.History) != 0 {
			t.Errorf("Expected zero stats, got %+v", page.ProfileStats)
		}

		again := viewProfile(t, handler, "Triangle")
		if again.Profile.ID != page.Profile.ID {
			t.Errorf("Expected the same profile on second view, got ids %d and %d", page.Profile.ID, again.Profile.ID)
		}
	})

	t.Run("html page", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/move_profile/Triangle", nil, nil)
		req.SetPathValue("move_name", "Triangle")
		w := httptest.NewRecorder()
		handler.ViewProfile(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if !strings.Contains(w.Body.String(), "<h1>Triangle</h1>") {
			t.Errorf("Expected profile heading, got: %s", w.Body.String())
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	tests := []struct {
		name             string
		makeRequest      func() *http.Request
		expectedStatus   int
		expectedHitCount int64
		expectedNotes    string
	}{
		{
			name: "form post",
			makeRequest: func() *http.Request {
				return testutil.MakeFormRequest("POST", "/move_profile/armbar",
					url.Values{"notes": {"squeeze knees"}, "hit_count": {"5"}}, testutil.AcceptJSON)
			},
			expectedStatus:   http.StatusOK,
			expectedHitCount: 5,
			expectedNotes:    "squeeze knees",
		},
		{
			name: "json post",
			makeRequest: func() *http.Request {
				return testutil.MakeRequest("POST", "/move_profile/armbar",
					models.UpdateProfileRequest{Notes: "thumb up", HitCount: 12}, testutil.AcceptJSON)
			},
			expectedStatus:   http.StatusOK,
			expectedHitCount: 12,
			expectedNotes:    "thumb up",
		},
		{
			name: "missing hit_count defaults to zero",
			makeRequest: func() *http.Request {
				return testutil.MakeFormRequest("POST", "/move_profile/armbar",
					url.Values{"notes": {"only notes"}}, testutil.AcceptJSON)
			},
			expectedStatus:   http.StatusOK,
			expectedHitCount: 0,
			expectedNotes:    "only notes",
		},
		{
			name: "non-integer hit_count",
			makeRequest: func() *http.Request {
				return testutil.MakeFormRequest("POST", "/move_profile/armbar",
					url.Values{"hit_count": {"lots"}}, testutil.AcceptJSON)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "negative hit_count",
			makeRequest: func() *http.Request {
				return testutil.MakeRequest("POST", "/move_profile/armbar",
					`{"hit_count": -3}`, testutil.AcceptJSON)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.SetupTestStore(t)
			handler := NewProfileHandler(store, nil)

			req := tt.makeRequest()
			req.SetPathValue("move_name", "armbar")
			w := httptest.NewRecorder()
			handler.UpdateProfile(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var page models.MoveProfilePage
			testutil.AssertJSON(t, w, &page)
			if page.Profile.HitCount != tt.expectedHitCount || page.Profile.Notes != tt.expectedNotes {
				t.Errorf("Expected hit_count %d notes %q, got %+v", tt.expectedHitCount, tt.expectedNotes, page.Profile)
			}
		})
	}
}

func TestUpdateProfile_RoundTrip(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewProfileHandler(store, nil)

	created := viewProfile(t, handler, "armbar")

	req := testutil.MakeFormRequest("POST", "/move_profile/armbar",
		url.Values{"notes": {"x"}, "hit_count": {"5"}}, nil)
	req.SetPathValue("move_name", "armbar")
	w := httptest.NewRecorder()
	handler.UpdateProfile(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	page := viewProfile(t, handler, "armbar")
	if page.Profile.HitCount != 5 || page.Profile.Notes != "x" {
		t.Errorf("Expected hit_count 5 and notes 'x', got %+v", page.Profile)
	}
	if page.Profile.ID != created.Profile.ID {
		t.Errorf("Expected update to keep profile id %d, got %d", created.Profile.ID, page.Profile.ID)
	}
}

func TestRecordHit(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewProfileHandler(store, nil)

	const n = 6
	for i := 0; i < n; i++ {
		recordHit(t, handler, "Kimura")
	}

	page := viewProfile(t, handler, "Kimura")
	if page.Profile.HitCount != n {
		t.Errorf("Expected hit_count %d, got %d", n, page.Profile.HitCount)
	}
	if page.TodayHits != n || page.DailyBest != n {
		t.Errorf("Expected today_hits and daily_best %d, got %d and %d", n, page.TodayHits, page.DailyBest)
	}
	if len(page.History) != 1 || page.History[0].Date != "2024-03-15" || page.History[0].Count != n {
		t.Errorf("Unexpected history %+v", page.History)
	}

	t.Run("missing move_name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.RecordHit(w, testutil.MakeRequest("POST", "/update_hit_count", `{}`, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.RecordHit(w, testutil.MakeRequest("POST", "/update_hit_count", `move_name=Kimura`, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
