// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed by SQLStore.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is portable between PostgreSQL and SQLite: timestamps are always
// written by the application, never defaulted by the database.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Sessions (one question each; at most one row has is_active = TRUE)
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    is_active BOOLEAN NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_active ON session(is_active);
CREATE INDEX IF NOT EXISTS idx_session_created ON session(created_at);

-- Word counts (materialized aggregate, reconstructable from vote)
CREATE TABLE IF NOT EXISTS word_count (
    session_id TEXT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    word TEXT NOT NULL,
    count BIGINT NOT NULL,
    first_seen TIMESTAMP NOT NULL,
    last_updated TIMESTAMP NOT NULL,
    PRIMARY KEY (session_id, word)
);

CREATE INDEX IF NOT EXISTS idx_word_count_session ON word_count(session_id);

-- Vote log (append-only, audit/history)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    word TEXT NOT NULL,
    voter_name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_session ON vote(session_id);
`
