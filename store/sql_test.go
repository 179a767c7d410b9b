// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// setupSQLStore creates a SQLStore backed by a throwaway SQLite file.
// The same SQL runs against PostgreSQL in production; SQLite keeps the
// contract tests self-contained.
func setupSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "wordstorm_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return NewSQLStore(db)
}

func TestSQLIncrementAndTopWords(t *testing.T) {
	s := setupSQLStore(t)
	ctx := context.Background()

	session, err := s.CreateSession(ctx, "Favorite color?")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	votes := []struct {
		word  string
		voter string
	}{
		{"BLUE", "P1"}, {"BLUE", "P2"}, {"RED", "P3"},
	}
	for _, v := range votes {
		if _, err := s.Increment(ctx, session.ID, v.word, v.voter); err != nil {
			t.Fatalf("Increment(%s) failed: %v", v.word, err)
		}
	}

	words, err := s.TopWords(ctx, session.ID, 2)
	if err != nil {
		t.Fatalf("TopWords failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(words))
	}
	if words[0].Word != "BLUE" || words[0].Count != 2 {
		t.Errorf("expected (BLUE, 2) first, got (%s, %d)", words[0].Word, words[0].Count)
	}
	if words[1].Word != "RED" || words[1].Count != 1 {
		t.Errorf("expected (RED, 1) second, got (%s, %d)", words[1].Word, words[1].Count)
	}

	count, err := s.VoteCount(ctx, session.ID)
	if err != nil {
		t.Fatalf("VoteCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 votes, got %d", count)
	}
}

func TestSQLIncrementReturnsNewCount(t *testing.T) {
	s := setupSQLStore(t)
	ctx := context.Background()
	session, _ := s.CreateSession(ctx, "Q")

	for i := int64(1); i <= 5; i++ {
		count, err := s.Increment(ctx, session.ID, "STORM", "Tester")
		if err != nil {
			t.Fatalf("Increment failed: %v", err)
		}
		if count != i {
			t.Errorf("expected count %d, got %d", i, count)
		}
	}
}

func TestSQLCreateSessionDeactivatesPrevious(t *testing.T) {
	s := setupSQLStore(t)
	ctx := context.Background()

	first, err := s.CreateSession(ctx, "First?")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	second, err := s.CreateSession(ctx, "Second?")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	active, err := s.ActiveSession(ctx)
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if active == nil || active.ID != second.ID {
		t.Fatalf("expected active session %s, got %+v", second.ID, active)
	}

	sessions, err := s.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != second.ID {
		t.Error("expected newest session first")
	}
	for _, sess := range sessions {
		if sess.ID == first.ID && sess.IsActive {
			t.Error("superseded session should not be active")
		}
	}
}

func TestSQLActiveSessionBeforeInit(t *testing.T) {
	s := setupSQLStore(t)

	active, err := s.ActiveSession(context.Background())
	if err != nil {
		t.Fatalf("ActiveSession failed: %v", err)
	}
	if active != nil {
		t.Errorf("expected no active session, got %+v", active)
	}
}

func TestSQLClearWordsKeepsSession(t *testing.T) {
	s := setupSQLStore(t)
	ctx := context.Background()

	session, _ := s.CreateSession(ctx, "Favorite color?")
	s.Increment(ctx, session.ID, "BLUE", "P1")
	s.Increment(ctx, session.ID, "BLUE", "P2")

	if err := s.ClearWords(ctx, session.ID); err != nil {
		t.Fatalf("ClearWords failed: %v", err)
	}

	words, _ := s.TopWords(ctx, session.ID, 10)
	if len(words) != 0 {
		t.Errorf("expected no words after clear, got %v", words)
	}
	count, _ := s.VoteCount(ctx, session.ID)
	if count != 0 {
		t.Errorf("expected 0 votes after clear, got %d", count)
	}

	active, _ := s.ActiveSession(ctx)
	if active == nil || active.ID != session.ID || active.Question != "Favorite color?" {
		t.Errorf("session should survive ClearWords unchanged, got %+v", active)
	}
}

func TestSQLClearAll(t *testing.T) {
	s := setupSQLStore(t)
	ctx := context.Background()

	session, _ := s.CreateSession(ctx, "Q")
	s.Increment(ctx, session.ID, "BLUE", "P1")

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	active, _ := s.ActiveSession(ctx)
	if active != nil {
		t.Error("expected no active session after ClearAll")
	}
	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 0 {
		t.Errorf("expected no sessions after ClearAll, got %d", len(sessions))
	}
}

func TestSQLUnknownSessionReads(t *testing.T) {
	s := setupSQLStore(t)
	ctx := context.Background()

	words, err := s.TopWords(ctx, "missing", 10)
	if err != nil || len(words) != 0 {
		t.Errorf("expected empty result for unknown session, got %v, %v", words, err)
	}
	count, err := s.VoteCount(ctx, "missing")
	if err != nil || count != 0 {
		t.Errorf("expected 0 votes for unknown session, got %d, %v", count, err)
	}
}
