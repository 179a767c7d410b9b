// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/danielhkuo/wordstorm/coordinator"
	"github.com/danielhkuo/wordstorm/models"
)

// Envelope is the wire frame for every websocket message, both
// directions: an event name plus an event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes to conn
}

func (c *client) send(event string, payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return websocket.JSON.Send(c.conn, outEnvelope{Event: event, Data: payload})
}

// Registry tracks live connections and implements the outbound side:
// targeted sends and broadcasts. It exists separately from Gateway so the
// coordinator can be handed a Sender before the Gateway that feeds it is
// constructed.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*client
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*client)}
}

func (r *Registry) add(id string, conn *websocket.Conn) {
	r.mu.Lock()
	r.conns[id] = &client{conn: conn}
	r.mu.Unlock()
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.conns, id)
	r.mu.Unlock()
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Send pushes one event to one client. Unknown IDs are ignored; the
// client may have disconnected between dispatch and delivery.
func (r *Registry) Send(clientID, event string, payload interface{}) {
	r.mu.RLock()
	c, ok := r.conns[clientID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	if err := c.send(event, payload); err != nil {
		slog.Debug("websocket send failed", "client_id", clientID, "event", event, "error", err)
	}
}

// Broadcast pushes one event to every connected client. A slow or dead
// connection only loses its own message.
func (r *Registry) Broadcast(event string, payload interface{}) {
	r.mu.RLock()
	clients := make([]*client, 0, len(r.conns))
	for _, c := range r.conns {
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(event, payload); err != nil {
			slog.Debug("websocket broadcast failed", "event", event, "error", err)
		}
	}
}

// Gateway accepts websocket connections, assigns each a server-side ID,
// and dispatches inbound envelopes to the coordinator. Clients are
// anonymous transport endpoints here; identity only attaches at join.
type Gateway struct {
	registry *Registry
	coord    *coordinator.Coordinator
}

func New(registry *Registry, coord *coordinator.Coordinator) *Gateway {
	return &Gateway{registry: registry, coord: coord}
}

// Handler returns the HTTP handler that upgrades to websocket.
func (g *Gateway) Handler() http.Handler {
	return websocket.Handler(g.serve)
}

func (g *Gateway) serve(conn *websocket.Conn) {
	clientID := uuid.NewString()
	g.registry.add(clientID, conn)
	slog.Info("client connected", "client_id", clientID, "connections", g.registry.Count())
	g.broadcastConnectionCount()

	defer func() {
		g.registry.remove(clientID)
		g.coord.OnDisconnect(clientID)
		slog.Info("client disconnected", "client_id", clientID, "connections", g.registry.Count())
		g.broadcastConnectionCount()
	}()

	ctx := conn.Request().Context()
	for {
		var env Envelope
		if err := websocket.JSON.Receive(conn, &env); err != nil {
			// io.EOF on clean close; anything else is a dropped peer.
			return
		}
		g.dispatch(ctx, clientID, env)
	}
}

func (g *Gateway) dispatch(ctx context.Context, clientID string, env Envelope) {
	switch env.Event {
	case models.EventJoin:
		var req models.JoinRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			g.registry.Send(clientID, models.EventJoinError, models.ErrorMessage{Message: "Invalid join payload"})
			return
		}
		g.coord.OnJoin(ctx, clientID, req.Name)
	case models.EventVote:
		var req models.VoteRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			g.registry.Send(clientID, models.EventVoteError, models.ErrorMessage{Message: "Invalid vote payload"})
			return
		}
		g.coord.OnVote(ctx, clientID, req.Word)
	default:
		slog.Debug("unknown event ignored", "client_id", clientID, "event", env.Event)
	}
}

func (g *Gateway) broadcastConnectionCount() {
	g.registry.Broadcast(models.EventConnectionCount, models.ConnectionCount{Count: g.registry.Count()})
}
