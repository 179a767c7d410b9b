// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the admin HTTP endpoints.

Participants never touch these routes; they interact over the websocket
(see package gateway). The admin surface is for whoever is running the
session:

	POST /admin/question   start a new session with a new question
	POST /admin/reset      clear the active session's votes
	GET  /admin/stats      participant count, vote count, current question
	GET  /admin/sessions   session history, newest first
	POST /admin/clear-all  delete everything

State-changing endpoints broadcast to all connected clients through the
coordinator, so the projected wordcloud reacts immediately.
*/
package handlers
