// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ratelimit gates vote frequency per participant.

The limiter is a fixed-window gate, not a sliding log: one timestamp per
participant (the last accepted vote) is all the state it keeps. The check
and the record happen under one lock so a participant can never have two
votes in flight that both pass the window.

	l := ratelimit.New(ratelimit.DefaultWindow)
	allowed, retryAfter := l.CheckAndRecord(participantID, time.Now())

Entries are removed on disconnect via Forget: a deliberate forgiving
policy, so a participant who reconnects is not limited by a stale entry.
*/
package ratelimit
