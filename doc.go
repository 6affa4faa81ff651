// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the BJJ journal server.

The server keeps a personal Brazilian Jiu-Jitsu training log in one SQLite
file: journal entries, a move graph drawn on named maps, per-move hit
counts with a daily history, and gym check-ins.

# Starting the Server

With no configuration it listens on :5000 and creates bjj.db in the working
directory:

	go run .

Or with flags:

	go run . serve -p 8080 -d ~/bjj/journal.db --log-format json

# Commands

  - serve (default): open the database, apply migrations, serve HTTP until
    SIGINT or SIGTERM, then drain within --shutdown-timeout
  - migrate: create or upgrade the database file and print per-table row counts
  - version: print the build version

# Configuration

Flags, then environment (PORT, DATABASE_PATH, LOG_LEVEL, LOG_FORMAT,
SHUTDOWN_TIMEOUT, PRUNE_MAP_TRANSITIONS, and a .env file), then
bjjournal.yaml, then defaults. See package cliparse.

# Architecture

  - handlers: HTTP request handlers (journal, move map, profiles, check-ins)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request ids, JSON helpers
  - views: Embedded HTML templates and canvas script
  - models: Domain, request and response types
  - db: Schema, migrations and the SQLite-backed Store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
