// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to their handlers.

Uses Go 1.22+ http.ServeMux method routing ("POST /admin/question").
The participant-facing surface is a single websocket endpoint at
GET /ws; everything else is the admin API plus health and root probes.
*/
package router
