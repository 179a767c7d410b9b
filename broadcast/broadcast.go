// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"sync"
	"time"
)

// DefaultWindow is the debounce interval for wordcloud fan-out.
const DefaultWindow = 100 * time.Millisecond

// Debouncer coalesces bursts of change signals into at most one onFlush
// call per window. The first NotifyChanged after an idle period arms the
// timer; signals while the timer is pending are absorbed; when the timer
// fires exactly one onFlush runs and the timer disarms again.
//
// The timer and the dirty state are owned by a single goroutine; other
// components only ever touch the buffered notify channel, so no lock is
// shared with callers and two timers can never race.
type Debouncer struct {
	window  time.Duration
	onFlush func()

	notify    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a Debouncer. onFlush runs on the debouncer's own goroutine;
// it typically fetches the current top words and broadcasts them.
func New(window time.Duration, onFlush func()) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	d := &Debouncer{
		window:  window,
		onFlush: onFlush,
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// NotifyChanged signals that the aggregate may have changed. It never
// blocks: while a flush is already pending the signal is absorbed.
func (d *Debouncer) NotifyChanged() {
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// Close stops the debouncer without flushing. Dropping a pending broadcast
// at shutdown is fine; clients receive current state on their next connect.
func (d *Debouncer) Close() {
	d.closeOnce.Do(func() { close(d.done) })
}

func (d *Debouncer) run() {
	timer := time.NewTimer(d.window)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-d.notify:
			if !armed {
				timer.Reset(d.window)
				armed = true
			}
		case <-timer.C:
			armed = false
			d.onFlush()
		case <-d.done:
			if armed && !timer.Stop() {
				<-timer.C
			}
			return
		}
	}
}
