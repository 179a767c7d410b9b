// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ratelimit

import (
	"sync"
	"time"
)

// DefaultWindow is the minimum interval between accepted votes per participant.
const DefaultWindow = 5 * time.Second

// Limiter bounds how often each participant may vote. It keeps a single
// timestamp per participant: the time of the last accepted vote.
type Limiter struct {
	window time.Duration

	mu       sync.Mutex
	lastVote map[string]time.Time
}

// New creates a Limiter with the given window. A zero or negative window
// falls back to DefaultWindow.
func New(window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		window:   window,
		lastVote: make(map[string]time.Time),
	}
}

// CheckAndRecord reports whether a vote from participantID at time now is
// allowed. On allow it records now as the participant's last accepted vote
// under the same lock, so two near-simultaneous votes cannot both pass.
// On deny it returns the whole seconds to wait, rounded up.
func (l *Limiter) CheckAndRecord(participantID string, now time.Time) (allowed bool, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, ok := l.lastVote[participantID]
	if ok {
		elapsed := now.Sub(last)
		if elapsed < l.window {
			remaining := l.window - elapsed
			// Ceiling division so a 4200 ms wait reports 5 seconds, not 4.
			secs := int((remaining + time.Second - 1) / time.Second)
			return false, secs
		}
	}

	l.lastVote[participantID] = now
	return true, 0
}

// Forget drops the participant's entry. Called on disconnect so a
// rejoining participant is not penalized by a stale timestamp.
func (l *Limiter) Forget(participantID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.lastVote, participantID)
}

// Size returns the number of tracked participants.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastVote)
}
