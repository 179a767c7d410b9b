// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/wordstorm/models"
)

// Store is the persistence contract for sessions, votes and word counts.
// Call sites are backend-agnostic: the same interface is satisfied by the
// in-memory store, the SQL store, the Firestore store and the Fallback
// wrapper. Durable implementations may block on network I/O and honor ctx.
type Store interface {
	// Increment atomically records a vote: the word's count within the
	// session goes up by one (created at 1 if absent) and a vote-log
	// record is appended in the same atomic step. Safe under concurrent
	// calls for the same word; returns the new count.
	Increment(ctx context.Context, sessionID, word, voterName string) (int64, error)

	// TopWords returns up to n entries sorted by count descending, ties
	// broken by first-seen order so repeated queries are stable when no
	// new votes arrived.
	TopWords(ctx context.Context, sessionID string, n int) ([]models.WordCount, error)

	// ClearWords removes all counts and the vote log for the session,
	// leaving the session itself (and its question) in place.
	ClearWords(ctx context.Context, sessionID string) error

	// VoteCount returns the total number of votes recorded for the session.
	VoteCount(ctx context.Context, sessionID string) (int64, error)

	// CreateSession creates a new active session, atomically deactivating
	// any previously active one. At most one session is active at a time.
	CreateSession(ctx context.Context, question string) (*models.Session, error)

	// ActiveSession returns the active session, or (nil, nil) when none exists.
	ActiveSession(ctx context.Context) (*models.Session, error)

	// Sessions returns all sessions, newest first.
	Sessions(ctx context.Context) ([]*models.Session, error)

	// ClearAll deletes every session and its votes. No active session
	// remains afterwards.
	ClearAll(ctx context.Context) error
}
