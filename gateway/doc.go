// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gateway is the websocket edge of the server.

Every frame in both directions is a JSON envelope {event, data}. Inbound
events (join, vote) are dispatched to the coordinator; outbound events
(join-success, vote-error, wordcloud-update, ...) are pushed through the
Registry, which tracks live connections and serializes writes per
connection.

Each connection gets a random server-side client ID at accept time. The
ID is transport identity only: a participant exists once the client
sends a valid join, and both the participant entry and its rate-limit
state are dropped when the socket closes.

connection-count is broadcast on every connect and disconnect so
dashboards can show live audience size without polling.
*/
package gateway
