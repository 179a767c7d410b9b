// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/wordstorm/models"
	"github.com/danielhkuo/wordstorm/session"
	"github.com/danielhkuo/wordstorm/store"
	"github.com/danielhkuo/wordstorm/testutil"
)

// fakeClock is a hand-driven clock for deterministic rate-limit tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupCoordinator(t *testing.T) (*Coordinator, *testutil.FakeSender, *fakeClock) {
	t.Helper()

	st := store.NewMemoryStore()
	sender := testutil.NewFakeSender()
	clock := newFakeClock()
	c := New(st, session.NewManager(st), sender, Options{
		DebounceWindow: 10 * time.Millisecond,
		Now:            clock.Now,
	})
	t.Cleanup(c.Close)
	return c, sender, clock
}

func join(t *testing.T, c *Coordinator, clientID, name string) {
	t.Helper()
	c.OnJoin(context.Background(), clientID, name)
}

func lastErrorMessage(t *testing.T, sender *testutil.FakeSender, event string) string {
	t.Helper()
	events := sender.EventsNamed(event)
	if len(events) == 0 {
		t.Fatalf("expected a %s event, got none", event)
	}
	msg, ok := events[len(events)-1].Payload.(models.ErrorMessage)
	if !ok {
		t.Fatalf("expected ErrorMessage payload, got %T", events[len(events)-1].Payload)
	}
	return msg.Message
}

func TestJoinSuccess(t *testing.T) {
	c, sender, _ := setupCoordinator(t)

	join(t, c, "client-1", "  Alice  ")

	events := sender.EventsNamed(models.EventJoinSuccess)
	if len(events) != 1 {
		t.Fatalf("expected 1 join-success, got %d", len(events))
	}
	payload := events[0].Payload.(models.JoinSuccess)
	if payload.Name != "Alice" {
		t.Errorf("expected trimmed name Alice, got %q", payload.Name)
	}
	if payload.Question != session.DefaultQuestion {
		t.Errorf("expected default question, got %q", payload.Question)
	}
	if payload.Words == nil || len(payload.Words) != 0 {
		t.Errorf("expected empty (non-nil) word list, got %v", payload.Words)
	}
	if events[0].ClientID != "client-1" {
		t.Errorf("join-success must target the joining client, got %q", events[0].ClientID)
	}
	if c.ParticipantCount() != 1 {
		t.Errorf("expected 1 participant, got %d", c.ParticipantCount())
	}
}

func TestJoinNameValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		rejected bool
	}{
		{"empty", "", true},
		{"single char", "A", true},
		{"whitespace only", "    ", true},
		{"two chars", "Al", false},
		{"fifty chars", strings.Repeat("x", 50), false},
		{"fifty-one chars", strings.Repeat("x", 51), true},
		{"multibyte counted as runes", strings.Repeat("ä", 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sender, _ := setupCoordinator(t)

			join(t, c, "client-1", tt.input)

			if tt.rejected {
				if got := lastErrorMessage(t, sender, models.EventJoinError); got != "Name must be 2-50 characters" {
					t.Errorf("unexpected join-error message: %q", got)
				}
				if c.ParticipantCount() != 0 {
					t.Error("rejected join must not register a participant")
				}
			} else {
				if len(sender.EventsNamed(models.EventJoinSuccess)) != 1 {
					t.Fatal("expected join-success")
				}
			}
		})
	}
}

func TestJoinDeliversExistingWordcloud(t *testing.T) {
	c, sender, _ := setupCoordinator(t)

	join(t, c, "client-1", "Alice")
	c.OnVote(context.Background(), "client-1", "blue")

	sender.Reset()
	join(t, c, "client-2", "Bob")

	events := sender.EventsNamed(models.EventJoinSuccess)
	if len(events) != 1 {
		t.Fatal("expected join-success for second client")
	}
	payload := events[0].Payload.(models.JoinSuccess)
	if len(payload.Words) != 1 || payload.Words[0].Word != "BLUE" || payload.Words[0].Count != 1 {
		t.Errorf("late joiner must receive current state, got %v", payload.Words)
	}
}

func TestVoteRequiresJoin(t *testing.T) {
	c, sender, _ := setupCoordinator(t)

	c.OnVote(context.Background(), "stranger", "blue")

	if got := lastErrorMessage(t, sender, models.EventVoteError); got != "Please join the session first" {
		t.Errorf("unexpected vote-error message: %q", got)
	}
}

func TestVotePipelineSuccess(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "client-1", "Alice")

	c.OnVote(context.Background(), "client-1", "  Blue  ")

	events := sender.EventsNamed(models.EventVoteSuccess)
	if len(events) != 1 {
		t.Fatalf("expected 1 vote-success, got %d", len(events))
	}
	payload := events[0].Payload.(models.VoteSuccess)
	if payload.Word != "BLUE" {
		t.Errorf("vote-success must carry the aggregation key, got %q", payload.Word)
	}
}

func TestVoteAggregatesCaseInsensitively(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "a", "Alice")
	join(t, c, "b", "Bob")
	join(t, c, "c", "Carol")

	ctx := context.Background()
	c.OnVote(ctx, "a", "blue")
	c.OnVote(ctx, "b", "Blue")
	c.OnVote(ctx, "c", "red")

	// The debouncer runs on real time; the fake clock only drives the
	// rate limiter. Let the 10ms window elapse.
	time.Sleep(50 * time.Millisecond)

	updates := sender.EventsNamed(models.EventWordcloudUpdate)
	if len(updates) == 0 {
		t.Fatal("expected a wordcloud-update broadcast")
	}
	words := updates[len(updates)-1].Payload.(models.WordcloudUpdate).Words
	if len(words) != 2 {
		t.Fatalf("expected 2 aggregated words, got %v", words)
	}
	if words[0].Word != "BLUE" || words[0].Count != 2 {
		t.Errorf("expected BLUE with count 2 first, got %v", words[0])
	}
	if words[1].Word != "RED" || words[1].Count != 1 {
		t.Errorf("expected RED with count 1 second, got %v", words[1])
	}
}

func TestVoteRateLimit(t *testing.T) {
	c, sender, clock := setupCoordinator(t)
	join(t, c, "client-1", "Alice")
	ctx := context.Background()

	// t=0: first vote accepted.
	c.OnVote(ctx, "client-1", "blue")
	if len(sender.EventsNamed(models.EventVoteSuccess)) != 1 {
		t.Fatal("first vote must be accepted")
	}

	// t=1000ms: inside the window, 4 full seconds remain.
	clock.Advance(time.Second)
	c.OnVote(ctx, "client-1", "red")
	if got := lastErrorMessage(t, sender, models.EventVoteError); got != "Please wait 4 seconds before voting again" {
		t.Errorf("unexpected rate-limit message: %q", got)
	}

	// t=5000ms from the accepted vote: window elapsed.
	clock.Advance(4 * time.Second)
	c.OnVote(ctx, "client-1", "red")
	if len(sender.EventsNamed(models.EventVoteSuccess)) != 2 {
		t.Error("vote at exactly the window boundary must be accepted")
	}
}

func TestRateLimitIsPerParticipant(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "a", "Alice")
	join(t, c, "b", "Bob")
	ctx := context.Background()

	c.OnVote(ctx, "a", "blue")
	c.OnVote(ctx, "b", "blue")

	if got := len(sender.EventsNamed(models.EventVoteSuccess)); got != 2 {
		t.Errorf("two participants must each get a vote, got %d successes", got)
	}
}

func TestVoteValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		message string
	}{
		{"empty", "", "Word cannot be empty"},
		{"whitespace only", "   ", "Word cannot be empty"},
		{"disallowed chars only", "@#$%", "Word cannot be empty"},
		{"punctuation only", "...", "Word cannot be empty"},
		{"too long", strings.Repeat("a", 51), "Word must be 50 characters or less"},
		{"stop word", "the", `Common words like "the", "a", "and" are not allowed`},
		{"stop word upper", "The", `Common words like "the", "a", "and" are not allowed`},
		{"stop word and", "AND", `Common words like "the", "a", "and" are not allowed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sender, _ := setupCoordinator(t)
			join(t, c, "client-1", "Alice")

			c.OnVote(context.Background(), "client-1", tt.word)

			if got := lastErrorMessage(t, sender, models.EventVoteError); got != tt.message {
				t.Errorf("got %q, want %q", got, tt.message)
			}
			if len(sender.EventsNamed(models.EventVoteSuccess)) != 0 {
				t.Error("invalid vote must not produce vote-success")
			}
		})
	}
}

func TestRejectedVoteStillConsumesRateWindow(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "client-1", "Alice")
	ctx := context.Background()

	// The rate check runs before validation, so an invalid word opens the
	// window too.
	c.OnVote(ctx, "client-1", "the")
	c.OnVote(ctx, "client-1", "blue")

	if got := lastErrorMessage(t, sender, models.EventVoteError); got != "Please wait 5 seconds before voting again" {
		t.Errorf("second vote should be rate limited, got %q", got)
	}
	if len(sender.EventsNamed(models.EventVoteSuccess)) != 0 {
		t.Error("no vote should have been recorded")
	}
}

func TestDisconnectForgetsParticipantAndRateState(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "client-1", "Alice")
	ctx := context.Background()

	c.OnVote(ctx, "client-1", "blue")
	c.OnDisconnect("client-1")

	if c.ParticipantCount() != 0 {
		t.Errorf("expected 0 participants after disconnect, got %d", c.ParticipantCount())
	}

	// A fresh join under the same client ID starts with a clean window.
	join(t, c, "client-1", "Alice")
	c.OnVote(ctx, "client-1", "red")
	if got := len(sender.EventsNamed(models.EventVoteSuccess)); got != 2 {
		t.Errorf("rate state must be forgotten on disconnect, got %d successes", got)
	}
}

func TestSetQuestion(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "client-1", "Alice")
	ctx := context.Background()

	c.OnVote(ctx, "client-1", "blue")
	sess, err := c.SetQuestion(ctx, "Favorite color?")
	if err != nil {
		t.Fatalf("SetQuestion failed: %v", err)
	}
	if sess.Question != "Favorite color?" {
		t.Errorf("unexpected question: %q", sess.Question)
	}

	updated := sender.EventsNamed(models.EventQuestionUpdated)
	if len(updated) != 1 {
		t.Fatalf("expected 1 question-updated broadcast, got %d", len(updated))
	}
	if q := updated[0].Payload.(models.QuestionUpdated).Question; q != "Favorite color?" {
		t.Errorf("broadcast carries wrong question: %q", q)
	}
	if len(sender.EventsNamed(models.EventSessionReset)) != 1 {
		t.Error("expected session-reset broadcast after question change")
	}

	// New session starts with an empty cloud.
	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.VoteCount != 0 {
		t.Errorf("new session must start at 0 votes, got %d", stats.VoteCount)
	}
}

func TestSetQuestionRejectsEmpty(t *testing.T) {
	c, _, _ := setupCoordinator(t)

	if _, err := c.SetQuestion(context.Background(), "   "); err == nil {
		t.Error("expected an error for a blank question")
	}
}

func TestResetKeepsQuestionClearsVotes(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "client-1", "Alice")
	ctx := context.Background()

	if _, err := c.SetQuestion(ctx, "Favorite color?"); err != nil {
		t.Fatalf("SetQuestion failed: %v", err)
	}
	c.OnVote(ctx, "client-1", "blue")

	sess, err := c.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if sess.Question != "Favorite color?" {
		t.Errorf("reset must preserve the question, got %q", sess.Question)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.VoteCount != 0 {
		t.Errorf("reset must clear votes, got %d", stats.VoteCount)
	}
	if len(sender.EventsNamed(models.EventSessionReset)) < 2 {
		t.Error("expected a session-reset broadcast from Reset")
	}
}

func TestStats(t *testing.T) {
	c, _, _ := setupCoordinator(t)
	join(t, c, "a", "Alice")
	join(t, c, "b", "Bob")
	ctx := context.Background()

	c.OnVote(ctx, "a", "blue")
	c.OnVote(ctx, "b", "red")

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.ParticipantCount != 2 {
		t.Errorf("expected 2 participants, got %d", stats.ParticipantCount)
	}
	if stats.VoteCount != 2 {
		t.Errorf("expected 2 votes, got %d", stats.VoteCount)
	}
	if stats.CurrentQuestion != session.DefaultQuestion {
		t.Errorf("unexpected question: %q", stats.CurrentQuestion)
	}
	if stats.SessionID == "" {
		t.Error("expected a session ID")
	}
}

func TestClearAll(t *testing.T) {
	c, sender, _ := setupCoordinator(t)
	join(t, c, "client-1", "Alice")
	ctx := context.Background()

	c.OnVote(ctx, "client-1", "blue")
	if err := c.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	history, err := c.History(ctx)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history after ClearAll, got %d sessions", len(history))
	}
	if len(sender.EventsNamed(models.EventSessionReset)) == 0 {
		t.Error("expected a session-reset broadcast from ClearAll")
	}
}

func TestConcurrentVotesAllRecorded(t *testing.T) {
	c, _, _ := setupCoordinator(t)
	ctx := context.Background()

	const n = 20
	for i := 0; i < n; i++ {
		join(t, c, string(rune('a'+i)), "Participant")
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			c.OnVote(ctx, id, "blue")
		}(string(rune('a' + i)))
	}
	wg.Wait()

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.VoteCount != n {
		t.Errorf("expected %d votes, got %d", n, stats.VoteCount)
	}
}
