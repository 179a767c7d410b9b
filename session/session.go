// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/wordstorm/models"
	"github.com/danielhkuo/wordstorm/store"
)

// DefaultQuestion is used when no session has ever been created.
const DefaultQuestion = "What word comes to mind?"

// Manager owns the session lifecycle on top of a Store: which session is
// active, how sessions rotate, and what happens on reset. A session moves
// Active → Superseded when a new one is created, or stays Active with its
// counts cleared on ResetActive.
//
// Concurrent Create calls are last-write-wins; two admins racing to set a
// question simply end with the later question active.
type Manager struct {
	store store.Store
}

func NewManager(st store.Store) *Manager {
	return &Manager{store: st}
}

// Create starts a new active session for the question, superseding any
// previously active session. The old session stays queryable as history.
func (m *Manager) Create(ctx context.Context, question string) (*models.Session, error) {
	session, err := m.store.CreateSession(ctx, question)
	if err != nil {
		return nil, err
	}
	slog.Info("session created", "session_id", session.ID, "question", question)
	return session, nil
}

// Active returns the current session, or nil before first initialization.
func (m *Manager) Active(ctx context.Context) (*models.Session, error) {
	return m.store.ActiveSession(ctx)
}

// EnsureActive returns the active session, creating one with
// DefaultQuestion when none exists yet. This self-heals the "no session"
// state at join time so votes never observe it in practice.
func (m *Manager) EnsureActive(ctx context.Context) (*models.Session, error) {
	session, err := m.store.ActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}
	return m.Create(ctx, DefaultQuestion)
}

// ResetActive clears the active session's counts and vote log in place.
// Session identity and question are preserved and no history entry is
// added; this is "clear the votes", not "new question". When no session
// exists one is created with the default question.
func (m *Manager) ResetActive(ctx context.Context) (*models.Session, error) {
	session, err := m.EnsureActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.store.ClearWords(ctx, session.ID); err != nil {
		return nil, err
	}
	slog.Info("session reset", "session_id", session.ID, "question", session.Question)
	return session, nil
}

// History returns all sessions, newest first.
func (m *Manager) History(ctx context.Context) ([]*models.Session, error) {
	return m.store.Sessions(ctx)
}

// ClearAll deletes every session and its votes. Afterwards Active returns
// nil until a new session is created.
func (m *Manager) ClearAll(ctx context.Context) error {
	if err := m.store.ClearAll(ctx); err != nil {
		return err
	}
	slog.Info("all sessions cleared")
	return nil
}
