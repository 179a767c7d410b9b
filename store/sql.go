// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/wordstorm/models"
)

// SQLStore is the durable Store over database/sql. It works against both
// PostgreSQL (github.com/lib/pq) and SQLite (modernc.org/sqlite); queries
// use $1 placeholders and upserts, which both drivers accept.
//
// Increments run as an upsert inside the same transaction as the vote-log
// insert, so the count update is atomic even with multiple server
// instances writing to a shared database. There is deliberately no
// read-then-write anywhere in this file.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Increment(ctx context.Context, sessionID, word, voterName string) (int64, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, session_id, word, voter_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), sessionID, word, voterName, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert vote: %w", err)
	}

	var newCount int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO word_count (session_id, word, count, first_seen, last_updated)
		VALUES ($1, $2, 1, $3, $3)
		ON CONFLICT (session_id, word)
		DO UPDATE SET count = word_count.count + 1, last_updated = $3
		RETURNING count
	`, sessionID, word, now).Scan(&newCount)
	if err != nil {
		return 0, fmt.Errorf("failed to increment word count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit vote: %w", err)
	}

	return newCount, nil
}

func (s *SQLStore) TopWords(ctx context.Context, sessionID string, n int) ([]models.WordCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT word, count FROM word_count
		WHERE session_id = $1
		ORDER BY count DESC, first_seen ASC
		LIMIT $2
	`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top words: %w", err)
	}
	defer rows.Close()

	entries := []models.WordCount{}
	for rows.Next() {
		var entry models.WordCount
		if err := rows.Scan(&entry.Word, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan word count: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word counts: %w", err)
	}

	return entries, nil
}

func (s *SQLStore) ClearWords(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_count WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear word counts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM vote WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}

func (s *SQLStore) VoteCount(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE session_id = $1
	`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (s *SQLStore) CreateSession(ctx context.Context, question string) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		Question:  question,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Deactivate-then-insert in one transaction keeps the "at most one
	// active session" invariant. Concurrent creates are last-write-wins.
	if _, err := tx.ExecContext(ctx, `UPDATE session SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session (id, question, is_active, created_at)
		VALUES ($1, $2, TRUE, $3)
	`, session.ID, session.Question, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	return session, nil
}

func (s *SQLStore) ActiveSession(ctx context.Context) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, question, is_active, created_at FROM session
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&session.ID, &session.Question, &session.IsActive, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active session: %w", err)
	}
	return session, nil
}

func (s *SQLStore) Sessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, is_active, created_at FROM session
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(&session.ID, &session.Question, &session.IsActive, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	return sessions, nil
}

func (s *SQLStore) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Child tables first: SQLite does not enforce ON DELETE CASCADE unless
	// foreign keys are enabled, so don't rely on it.
	for _, table := range []string{"vote", "word_count", "session"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear-all: %w", err)
	}
	return nil
}
