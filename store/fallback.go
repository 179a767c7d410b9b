// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/wordstorm/models"
)

// Fallback wraps a durable Store with a process-local MemoryStore. Every
// operation first goes to the durable backend; if that call fails (network,
// timeout, permissions) the degradation is logged and the operation is
// served by the memory store instead. Durable errors therefore never
// propagate past the store boundary, and a vote is never dropped because
// the database was unreachable.
//
// The memory side is only consistent within one server instance. That is
// an accepted degraded mode, not full durability.
type Fallback struct {
	durable Store
	memory  *MemoryStore
}

func NewFallback(durable Store) *Fallback {
	return &Fallback{
		durable: durable,
		memory:  NewMemoryStore(),
	}
}

func (f *Fallback) degraded(op string, err error) {
	slog.Warn("durable store unavailable, using in-memory fallback", "op", op, "error", err)
}

func (f *Fallback) Increment(ctx context.Context, sessionID, word, voterName string) (int64, error) {
	count, err := f.durable.Increment(ctx, sessionID, word, voterName)
	if err != nil {
		f.degraded("increment", err)
		return f.memory.Increment(ctx, sessionID, word, voterName)
	}
	return count, nil
}

func (f *Fallback) TopWords(ctx context.Context, sessionID string, n int) ([]models.WordCount, error) {
	entries, err := f.durable.TopWords(ctx, sessionID, n)
	if err != nil {
		f.degraded("top_words", err)
		return f.memory.TopWords(ctx, sessionID, n)
	}
	return entries, nil
}

func (f *Fallback) ClearWords(ctx context.Context, sessionID string) error {
	// Clear both sides: the memory store may hold votes recorded while the
	// durable backend was unreachable.
	if err := f.memory.ClearWords(ctx, sessionID); err != nil {
		return err
	}
	if err := f.durable.ClearWords(ctx, sessionID); err != nil {
		f.degraded("clear_words", err)
	}
	return nil
}

func (f *Fallback) VoteCount(ctx context.Context, sessionID string) (int64, error) {
	count, err := f.durable.VoteCount(ctx, sessionID)
	if err != nil {
		f.degraded("vote_count", err)
		return f.memory.VoteCount(ctx, sessionID)
	}
	return count, nil
}

func (f *Fallback) CreateSession(ctx context.Context, question string) (*models.Session, error) {
	session, err := f.durable.CreateSession(ctx, question)
	if err != nil {
		f.degraded("create_session", err)
		return f.memory.CreateSession(ctx, question)
	}
	return session, nil
}

func (f *Fallback) ActiveSession(ctx context.Context) (*models.Session, error) {
	session, err := f.durable.ActiveSession(ctx)
	if err != nil {
		f.degraded("active_session", err)
		return f.memory.ActiveSession(ctx)
	}
	return session, nil
}

func (f *Fallback) Sessions(ctx context.Context) ([]*models.Session, error) {
	sessions, err := f.durable.Sessions(ctx)
	if err != nil {
		f.degraded("sessions", err)
		return f.memory.Sessions(ctx)
	}
	return sessions, nil
}

func (f *Fallback) ClearAll(ctx context.Context) error {
	if err := f.memory.ClearAll(ctx); err != nil {
		return err
	}
	if err := f.durable.ClearAll(ctx); err != nil {
		f.degraded("clear_all", err)
	}
	return nil
}
