// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/wordstorm/coordinator"
	"github.com/danielhkuo/wordstorm/middleware"
	"github.com/danielhkuo/wordstorm/models"
)

// AdminHandler exposes the presenter's controls over HTTP: change the
// question, reset the cloud, inspect state. Everything here fans out to
// connected clients through the coordinator.
type AdminHandler struct {
	coord *coordinator.Coordinator
}

func NewAdminHandler(coord *coordinator.Coordinator) *AdminHandler {
	return &AdminHandler{coord: coord}
}

// SetQuestion handles POST /admin/question
// Starts a new session with the given question; the previous session is
// kept as history and all clients are notified.
func (h *AdminHandler) SetQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.SetQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	session, err := h.coord.SetQuestion(r.Context(), req.Question)
	if err != nil {
		slog.Error("failed to set question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SetQuestionResponse{
		Success:   true,
		SessionID: session.ID,
		Question:  session.Question,
	})
}

// Reset handles POST /admin/reset
// Clears the active session's votes but keeps its question.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.coord.Reset(r.Context())
	if err != nil {
		slog.Error("failed to reset session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Success:   true,
		Message:   "Session reset",
		SessionID: session.ID,
	})
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.coord.Stats(r.Context())
	if err != nil {
		slog.Error("failed to load stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Sessions handles GET /admin/sessions
// Returns all sessions, newest first.
func (h *AdminHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.coord.History(r.Context())
	if err != nil {
		slog.Error("failed to load sessions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load sessions")
		return
	}

	if sessions == nil {
		sessions = []*models.Session{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.SessionsResponse{Sessions: sessions})
}

// ClearAll handles POST /admin/clear-all
// Deletes every session and vote. Irreversible.
func (h *AdminHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.coord.ClearAll(r.Context()); err != nil {
		slog.Error("failed to clear sessions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear sessions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClearAllResponse{
		Success: true,
		Message: "All sessions cleared",
	})
}
