// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package broadcast debounces wordcloud fan-out.

Every accepted vote signals NotifyChanged. Instead of broadcasting per
vote, the Debouncer coalesces all signals inside a window (100 ms by
default) into a single flush that reads the current top words and pushes
them to every connection. Under arbitrary vote burstiness the broadcast
rate is bounded to one per window, at the cost of at most one window of
staleness: the latest state is always broadcast within a window of the
last change.

The timer state lives in one goroutine (a small actor); callers interact
only through a buffered channel, so there is no shared timer to race on.
*/
package broadcast
