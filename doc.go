// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Wordstorm server.

Wordstorm is a live word-cloud service for audiences: a presenter poses
a question, participants join over a websocket and submit one word at a
time, and everyone watches the aggregated cloud grow in real time.

# Starting the Server

With no configuration the server runs fully in memory:

	go run main.go

Durable storage is selected via environment variables or CLI flags:

	DATABASE_URL=file:wordstorm.db go run main.go
	GCP_PROJECT_ID=my-project go run main.go
	go run main.go -p 3000 -t postgres -d "postgres://..."

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): memory, sqlite, postgres or firestore
  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - GCP_PROJECT_ID: Google Cloud project for firestore
  - GOOGLE_CREDENTIALS: inline service account JSON
  - DEBOUNCE_MS (-debounce-ms): broadcast debounce window
  - TOP_WORDS (-top-words): wordcloud size

A .env file is loaded when present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - gateway: websocket edge, connection registry, event envelopes
  - coordinator: join/vote pipeline (rate limit, validate, aggregate)
  - words: normalization, validation, stop-word filter
  - ratelimit: per-participant vote throttling
  - store: aggregate storage (memory, sql, firestore, fallback)
  - session: question lifecycle
  - broadcast: debounced wordcloud fan-out
  - handlers: admin HTTP endpoints
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Event names and payload types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
