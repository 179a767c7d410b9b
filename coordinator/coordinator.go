// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/wordstorm/broadcast"
	"github.com/danielhkuo/wordstorm/models"
	"github.com/danielhkuo/wordstorm/ratelimit"
	"github.com/danielhkuo/wordstorm/session"
	"github.com/danielhkuo/wordstorm/store"
	"github.com/danielhkuo/wordstorm/words"
)

// Sender is the capability the connection layer provides for pushing
// events out: to one client or to every connected client.
type Sender interface {
	Send(clientID, event string, payload interface{})
	Broadcast(event string, payload interface{})
}

// Options tune a Coordinator. The zero value uses production defaults.
type Options struct {
	// DebounceWindow bounds the wordcloud broadcast rate (default 100 ms).
	DebounceWindow time.Duration
	// TopWords is the number of entries in each wordcloud push (default 50).
	TopWords int
	// RateLimitWindow is the minimum interval between votes per
	// participant (default 5 s).
	RateLimitWindow time.Duration
	// Now supplies the clock; tests inject a fake one.
	Now func() time.Time
}

// DefaultTopWords is the size of the broadcast wordcloud snapshot.
const DefaultTopWords = 50

type participant struct {
	Name     string
	JoinedAt time.Time
}

// Coordinator orchestrates the ingestion pipeline for join/vote events
// coming from the connection layer: validation, rate limiting, word
// normalization, the stop-word filter, the aggregate store, and the
// debounced fan-out. All registries are held here and constructor-injected;
// tests build fresh isolated instances, nothing is package-global.
type Coordinator struct {
	store    store.Store
	sessions *session.Manager
	limiter  *ratelimit.Limiter
	sender   Sender
	debounce *broadcast.Debouncer
	now      func() time.Time
	topN     int

	mu           sync.RWMutex
	participants map[string]*participant
}

func New(st store.Store, sessions *session.Manager, sender Sender, opts Options) *Coordinator {
	if opts.TopWords <= 0 {
		opts.TopWords = DefaultTopWords
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Coordinator{
		store:        st,
		sessions:     sessions,
		limiter:      ratelimit.New(opts.RateLimitWindow),
		sender:       sender,
		now:          opts.Now,
		topN:         opts.TopWords,
		participants: make(map[string]*participant),
	}
	c.debounce = broadcast.New(opts.DebounceWindow, c.publishWordcloud)
	return c
}

// Close stops the debounce goroutine. A pending broadcast may be dropped;
// clients receive current state on their next connect.
func (c *Coordinator) Close() {
	c.debounce.Close()
}

// OnJoin handles a join event. The display name must be 2-50 characters
// after trimming; on success the client receives the current question and
// wordcloud state, so late joiners catch up immediately.
func (c *Coordinator) OnJoin(ctx context.Context, clientID, rawName string) {
	name := strings.TrimSpace(rawName)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		c.sender.Send(clientID, models.EventJoinError, models.ErrorMessage{
			Message: "Name must be 2-50 characters",
		})
		return
	}

	c.mu.Lock()
	c.participants[clientID] = &participant{Name: name, JoinedAt: c.now()}
	c.mu.Unlock()

	question := session.DefaultQuestion
	topWords := []models.WordCount{}

	sess, err := c.sessions.EnsureActive(ctx)
	if err != nil {
		// Store failures never abort a join; the client still gets the
		// default question and an empty cloud.
		slog.Error("failed to resolve active session on join", "error", err)
	} else {
		question = sess.Question
		if topWords, err = c.store.TopWords(ctx, sess.ID, c.topN); err != nil {
			slog.Error("failed to load wordcloud on join", "error", err)
			topWords = []models.WordCount{}
		}
	}

	c.sender.Send(clientID, models.EventJoinSuccess, models.JoinSuccess{
		Name:     name,
		Question: question,
		Words:    topWords,
	})
	slog.Info("participant joined", "client_id", clientID, "name", name)
}

// OnVote handles a vote event through the full pipeline: joined? → rate
// limit → normalize/validate → stop words → increment → debounced fan-out.
func (c *Coordinator) OnVote(ctx context.Context, clientID, rawWord string) {
	c.mu.RLock()
	p, joined := c.participants[clientID]
	c.mu.RUnlock()
	if !joined {
		c.voteError(clientID, "Please join the session first")
		return
	}

	allowed, retryAfter := c.limiter.CheckAndRecord(clientID, c.now())
	if !allowed {
		c.voteError(clientID, fmt.Sprintf("Please wait %d seconds before voting again", retryAfter))
		return
	}

	normalized := words.Normalize(rawWord)
	if err := words.Validate(normalized); err != nil {
		c.voteError(clientID, validationMessage(err))
		return
	}

	key := words.Key(normalized)
	if key == "" {
		c.voteError(clientID, validationMessage(words.ErrEmptyWord))
		return
	}
	if words.IsStopWord(key) {
		c.voteError(clientID, `Common words like "the", "a", "and" are not allowed`)
		return
	}

	sess, err := c.sessions.EnsureActive(ctx)
	if err != nil {
		slog.Error("no active session for vote", "error", err)
		c.voteError(clientID, "No active session")
		return
	}

	count, err := c.store.Increment(ctx, sess.ID, key, p.Name)
	if err != nil {
		slog.Error("failed to record vote", "error", err, "word", key)
		c.voteError(clientID, "Failed to record vote")
		return
	}

	c.sender.Send(clientID, models.EventVoteSuccess, models.VoteSuccess{Word: key})
	c.debounce.NotifyChanged()
	slog.Info("vote recorded", "word", key, "count", count, "voter", p.Name)
}

// OnDisconnect removes the participant and their rate-limit entry.
func (c *Coordinator) OnDisconnect(clientID string) {
	c.mu.Lock()
	delete(c.participants, clientID)
	c.mu.Unlock()
	c.limiter.Forget(clientID)
}

// SetQuestion starts a new session for the question and notifies every
// client that the question changed and the cloud was reset.
func (c *Coordinator) SetQuestion(ctx context.Context, question string) (*models.Session, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("question cannot be empty")
	}

	sess, err := c.sessions.Create(ctx, question)
	if err != nil {
		return nil, err
	}

	c.sender.Broadcast(models.EventQuestionUpdated, models.QuestionUpdated{Question: question})
	c.broadcastReset()
	return sess, nil
}

// Reset clears the active session's votes, keeping the question.
func (c *Coordinator) Reset(ctx context.Context) (*models.Session, error) {
	sess, err := c.sessions.ResetActive(ctx)
	if err != nil {
		return nil, err
	}
	c.broadcastReset()
	return sess, nil
}

// ClearAll deletes all sessions and votes (hard reset).
func (c *Coordinator) ClearAll(ctx context.Context) error {
	if err := c.sessions.ClearAll(ctx); err != nil {
		return err
	}
	c.broadcastReset()
	return nil
}

// Stats reports the current state for the admin surface.
func (c *Coordinator) Stats(ctx context.Context) (models.Stats, error) {
	stats := models.Stats{ParticipantCount: c.ParticipantCount()}

	sess, err := c.sessions.Active(ctx)
	if err != nil {
		return stats, err
	}
	if sess == nil {
		return stats, nil
	}

	stats.SessionID = sess.ID
	stats.CurrentQuestion = sess.Question
	if stats.VoteCount, err = c.store.VoteCount(ctx, sess.ID); err != nil {
		return stats, err
	}
	return stats, nil
}

// History returns all sessions, newest first.
func (c *Coordinator) History(ctx context.Context) ([]*models.Session, error) {
	return c.sessions.History(ctx)
}

// ParticipantCount returns the number of joined participants.
func (c *Coordinator) ParticipantCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.participants)
}

func (c *Coordinator) voteError(clientID, message string) {
	c.sender.Send(clientID, models.EventVoteError, models.ErrorMessage{Message: message})
}

func (c *Coordinator) broadcastReset() {
	c.sender.Broadcast(models.EventSessionReset, models.SessionReset{
		Timestamp: c.now().UTC().Format(time.RFC3339),
	})
}

// publishWordcloud is the debounce flush: fetch the current top words and
// push them to every client.
func (c *Coordinator) publishWordcloud() {
	ctx := context.Background()

	sess, err := c.sessions.Active(ctx)
	if err != nil || sess == nil {
		return
	}
	topWords, err := c.store.TopWords(ctx, sess.ID, c.topN)
	if err != nil {
		slog.Error("failed to load wordcloud for broadcast", "error", err)
		return
	}
	c.sender.Broadcast(models.EventWordcloudUpdate, models.WordcloudUpdate{Words: topWords})
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, words.ErrEmptyWord):
		return "Word cannot be empty"
	case errors.Is(err, words.ErrWordTooLong):
		return "Word must be 50 characters or less"
	default:
		return "Invalid word"
	}
}
