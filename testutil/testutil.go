// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// SentEvent records a single event pushed through a FakeSender.
type SentEvent struct {
	ClientID string // empty for broadcasts
	Event    string
	Payload  interface{}
}

// FakeSender captures outbound events in memory so tests can assert on
// exactly what was pushed and to whom. Safe for concurrent use.
type FakeSender struct {
	mu     sync.Mutex
	events []SentEvent
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (f *FakeSender) Send(clientID, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, SentEvent{ClientID: clientID, Event: event, Payload: payload})
}

func (f *FakeSender) Broadcast(event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, SentEvent{Event: event, Payload: payload})
}

// Events returns a snapshot of everything sent so far.
func (f *FakeSender) Events() []SentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SentEvent, len(f.events))
	copy(out, f.events)
	return out
}

// EventsNamed returns the sent events with the given event name, in order.
func (f *FakeSender) EventsNamed(event string) []SentEvent {
	var out []SentEvent
	for _, e := range f.Events() {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// LastEvent returns the most recent event, or nil if nothing was sent.
func (f *FakeSender) LastEvent() *SentEvent {
	events := f.Events()
	if len(events) == 0 {
		return nil
	}
	return &events[len(events)-1]
}

// Reset discards all recorded events.
func (f *FakeSender) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
