// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the HTML pages and serves the canvas script.

Templates and static assets are embedded at build time. Each page defines
"title" and "content" blocks inside the shared "layout":

	pages, err := views.New()
	if err != nil {
		log.Fatal(err)
	}
	err = pages.Render(w, views.PageJournal, models.JournalPage{Entries: entries})

Journal timestamps are shown relative to the renderer's clock ("3 hours
ago") using go-humanize.

	mux.Handle("GET /static/", http.StripPrefix("/static/", views.Static()))
*/
package views
