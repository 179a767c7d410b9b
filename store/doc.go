// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists sessions, votes and word counts.

# Contract

One Store interface, four implementations, chosen once at startup and
injected; call sites never branch on the backend:

  - MemoryStore: maps behind a mutex. Process-local, lost on restart.
  - SQLStore: database/sql against PostgreSQL (lib/pq) or SQLite
    (modernc.org/sqlite). Durable, shareable across server instances.
  - FirestoreStore: Cloud Firestore. Durable, shared, serverless.
  - Fallback: wraps a durable store; on any durable failure the operation
    is logged and transparently served by an embedded MemoryStore.

# Atomic Increments

Increment must never lose an update when several instances write the same
word concurrently. Each backend uses its native atomic primitive:

  - SQLStore: INSERT ... ON CONFLICT DO UPDATE SET count = count + 1
    RETURNING count, in the same transaction as the vote-log insert
  - FirestoreStore: RunTransaction with firestore.Increment(1)
  - MemoryStore: mutex

A read-then-write increment is an explicit bug; none of the backends
does one.

# Ordering

TopWords sorts by count descending with ties broken by first-seen order,
so repeated queries return identical output until a new vote arrives.
The SQL backend orders by a first_seen column, Firestore by a firstSeen
field (which requires a composite index), and the memory backend keeps
insertion order and sorts stably.
*/
package store
