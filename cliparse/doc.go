// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseType: Storage backend (memory, sqlite, postgres, firestore)
  - DatabaseURL: sqlite path or PostgreSQL connection string
  - GCPProjectID: Google Cloud project for the firestore backend
  - GoogleCredentials: inline service account JSON (optional)
  - DebounceMS: wordcloud broadcast debounce window
  - TopWords: words per wordcloud broadcast

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Storage backend
	-debounce-ms  Debounce window in milliseconds
	-top-words    Wordcloud size

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	DEBOUNCE_MS        → -debounce-ms
	TOP_WORDS          → -top-words
	GCP_PROJECT_ID     (env only)
	GOOGLE_CREDENTIALS (env only)

CLI flags take precedence over environment variables.

# Backend Selection

With no explicit -t or DATABASE_TYPE, the backend is inferred:
firestore when GCP_PROJECT_ID is set, sqlite when DATABASE_URL is set,
otherwise memory. The sql backends require a database URL; firestore
requires a project ID.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(coord, gw)
*/
package cliparse
