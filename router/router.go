// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/danielhkuo/wordstorm/coordinator"
	"github.com/danielhkuo/wordstorm/gateway"
	"github.com/danielhkuo/wordstorm/handlers"
	"github.com/danielhkuo/wordstorm/middleware"
)

func NewRouter(coord *coordinator.Coordinator, gw *gateway.Gateway) *http.ServeMux {
	mux := http.NewServeMux()

	adminHandler := handlers.NewAdminHandler(coord)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Realtime participant connection
	mux.Handle("GET /ws", gw.Handler())

	// Admin operations
	mux.HandleFunc("POST /admin/question", middleware.WithLogging(adminHandler.SetQuestion))
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.Reset))
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(adminHandler.Stats))
	mux.HandleFunc("GET /admin/sessions", middleware.WithLogging(adminHandler.Sessions))
	mux.HandleFunc("POST /admin/clear-all", middleware.WithLogging(adminHandler.ClearAll))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("wordstorm API v1"))
	})

	return mux
}
