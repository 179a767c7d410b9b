// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session manages the lifecycle of questions.

Exactly zero or one session is active at any instant. Creating a session
supersedes the previous one (kept read-only as history); ResetActive
clears the active session's votes in place without changing its identity
or question; ClearAll is the hard reset that deletes everything.

EnsureActive creates a session with DefaultQuestion when none exists, so
a participant joining a freshly deployed server always receives a prompt
and votes never hit a "no active session" state in practice.
*/
package session
