// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// WebSocket event names, inbound (client → server)
const (
	EventJoin = "join"
	EventVote = "vote"
)

// WebSocket event names, outbound (server → client)
const (
	EventJoinSuccess     = "join-success"
	EventJoinError       = "join-error"
	EventVoteSuccess     = "vote-success"
	EventVoteError       = "vote-error"
	EventConnectionCount = "connection-count"
	EventQuestionUpdated = "question-updated"
	EventWordcloudUpdate = "wordcloud-update"
	EventSessionReset    = "session-reset"
)

// Domain types

// Session is one question's lifetime together with its accumulated votes.
// At most one session is active at a time; superseded sessions are kept
// read-only as history.
type Session struct {
	ID        string    `json:"sessionId"`
	Question  string    `json:"question"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vote is an immutable record of a single accepted submission.
type Vote struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Word      string    `json:"word"` // aggregation key, already normalized
	VoterName string    `json:"name"`
	CreatedAt time.Time `json:"timestamp"`
}

// WordCount is one entry of the aggregated cloud, derived from votes.
type WordCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// Stats summarizes the current state for the admin surface.
type Stats struct {
	ParticipantCount int    `json:"participantCount"`
	VoteCount        int64  `json:"voteCount"`
	SessionID        string `json:"sessionId,omitempty"`
	CurrentQuestion  string `json:"currentQuestion,omitempty"`
}

// Inbound event payloads

type JoinRequest struct {
	Name string `json:"name"`
}

type VoteRequest struct {
	Word string `json:"word"`
}

// Outbound event payloads

type JoinSuccess struct {
	Name     string      `json:"name"`
	Question string      `json:"question"`
	Words    []WordCount `json:"words"`
}

type VoteSuccess struct {
	Word string `json:"word"`
}

// ErrorMessage carries join-error and vote-error reasons.
type ErrorMessage struct {
	Message string `json:"message"`
}

type ConnectionCount struct {
	Count int `json:"count"`
}

type QuestionUpdated struct {
	Question string `json:"question"`
}

type WordcloudUpdate struct {
	Words []WordCount `json:"words"`
}

type SessionReset struct {
	Timestamp string `json:"timestamp"`
}

// Admin HTTP request/response types

type SetQuestionRequest struct {
	Question string `json:"question"`
}

type SetQuestionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
}

type ResetResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type SessionsResponse struct {
	Sessions []*Session `json:"sessions"`
}

type ClearAllResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
