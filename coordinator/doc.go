// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package coordinator is the ingestion pipeline between the connection
layer and the aggregate store.

# Vote pipeline

Every vote passes the same gauntlet, in order:

 1. joined? A client that never sent a valid join gets a vote-error.
 2. rate limit: one vote per participant per window, checked and
    recorded atomically. This runs before validation, so a rejected
    word still consumes the participant's window.
 3. normalize and validate: lowercase-insensitive cleanup, length and
    character rules (see package words).
 4. stop-word filter.
 5. increment on the active session, then vote-success back to the
    voter and a debounced wordcloud broadcast to everyone.

Each rejection names its reason in a vote-error event; the voter always
hears back exactly once per submission.

# Wiring

The Coordinator pushes events through a small Sender interface rather
than talking to websockets directly, so tests run against an in-memory
fake and the connection layer stays swappable. The clock is injected
through Options.Now for deterministic rate-limit tests.
*/
package coordinator
