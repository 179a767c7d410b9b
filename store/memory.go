// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/wordstorm/models"
)

// MemoryStore is the process-local Store. State is lost on restart and not
// shared across instances: a documented weaker-consistency mode used when
// no durable backend is configured, and as the degraded target of Fallback.
type MemoryStore struct {
	mu       sync.Mutex
	sessions []*memorySession // creation order
	active   *memorySession
}

type memorySession struct {
	session models.Session
	counts  map[string]int64
	order   []string // first-seen order, for stable tie-breaking
	votes   []models.Vote
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// find returns the session record, or nil. Caller holds the lock.
func (m *MemoryStore) find(sessionID string) *memorySession {
	for _, s := range m.sessions {
		if s.session.ID == sessionID {
			return s
		}
	}
	return nil
}

// findOrCreate auto-registers an unknown session id. This happens when the
// store serves as degraded fallback for a durable backend that created the
// session before failing: votes must still be recorded somewhere.
func (m *MemoryStore) findOrCreate(sessionID string) *memorySession {
	if s := m.find(sessionID); s != nil {
		return s
	}
	s := &memorySession{
		session: models.Session{ID: sessionID, CreatedAt: time.Now()},
		counts:  make(map[string]int64),
	}
	m.sessions = append(m.sessions, s)
	return s
}

func (m *MemoryStore) Increment(ctx context.Context, sessionID, word, voterName string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.findOrCreate(sessionID)
	if _, seen := s.counts[word]; !seen {
		s.order = append(s.order, word)
	}
	s.counts[word]++
	s.votes = append(s.votes, models.Vote{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Word:      word,
		VoterName: voterName,
		CreatedAt: time.Now(),
	})
	return s.counts[word], nil
}

func (m *MemoryStore) TopWords(ctx context.Context, sessionID string, n int) ([]models.WordCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.find(sessionID)
	if s == nil {
		return []models.WordCount{}, nil
	}

	// Walk in first-seen order; a stable sort then preserves that order
	// among equal counts.
	entries := make([]models.WordCount, 0, len(s.order))
	for _, word := range s.order {
		entries = append(entries, models.WordCount{Word: word, Count: s.counts[word]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (m *MemoryStore) ClearWords(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.find(sessionID); s != nil {
		s.counts = make(map[string]int64)
		s.order = nil
		s.votes = nil
	}
	return nil
}

func (m *MemoryStore) VoteCount(ctx context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.find(sessionID); s != nil {
		return int64(len(s.votes)), nil
	}
	return 0, nil
}

func (m *MemoryStore) CreateSession(ctx context.Context, question string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.active.session.IsActive = false
	}
	s := &memorySession{
		session: models.Session{
			ID:        uuid.NewString(),
			Question:  question,
			IsActive:  true,
			CreatedAt: time.Now(),
		},
		counts: make(map[string]int64),
	}
	m.sessions = append(m.sessions, s)
	m.active = s

	session := s.session
	return &session, nil
}

func (m *MemoryStore) ActiveSession(ctx context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, nil
	}
	session := m.active.session
	return &session, nil
}

func (m *MemoryStore) Sessions(ctx context.Context) ([]*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.Session, 0, len(m.sessions))
	for i := len(m.sessions) - 1; i >= 0; i-- {
		session := m.sessions[i].session
		out = append(out, &session)
	}
	return out, nil
}

func (m *MemoryStore) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = nil
	m.active = nil
	return nil
}
