// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
)

// Page template names
const (
	PageJournal     = "journal.html"
	PageMoves       = "moves.html"
	PageMoveProfile = "move_profile.html"
)

var pageNames = []string{PageJournal, PageMoves, PageMoveProfile}

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

type Option func(*Renderer)

// WithClock sets the reference time for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// New parses every page together with the shared layout.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template, len(pageNames)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, name := range pageNames {
		tmpl, err := template.New(name).
			Funcs(r.funcs()).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes page to w. Output is buffered; on error nothing is written.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return "unknown"
			}
			return humanize.RelTime(t, r.now(), "ago", "from now")
		},
		"stamp": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04:05")
		},
		"comma":      humanize.Comma,
		"pathEscape": url.PathEscape,
		"percent":    percent,
	}
}

// percent scales n against best for the history bars.
func percent(n, best int) int {
	if best <= 0 {
		return 0
	}
	return n * 100 / best
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}
