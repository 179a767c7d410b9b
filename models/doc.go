// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the shared types of the WordStorm server.

# Domain Types

  - Session: one question's lifetime with its vote log and word counts
  - Vote: immutable record of an accepted submission
  - WordCount: one aggregated (word, count) entry
  - Stats: admin-facing summary of the current state

# Event Types

WebSocket traffic uses named events with JSON payloads. Inbound events
are join and vote; outbound events are either addressed to a single
connection (join-success, join-error, vote-success, vote-error) or
broadcast to every connection (connection-count, question-updated,
wordcloud-update, session-reset).

Event name constants (EventJoinSuccess etc.) are the single source of
truth for the wire names; the gateway and the coordinator both use them.

# Admin Types

Request/response bodies for the /admin HTTP endpoints mirror the JSON
shapes of the admin dashboard: SetQuestionRequest, SetQuestionResponse,
ResetResponse, SessionsResponse, ClearAllResponse.
*/
package models
