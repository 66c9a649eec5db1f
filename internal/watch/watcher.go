// Package watch detects in-page navigation on a single-page application.
// The host app mutates its URL without full reloads, so the watcher is
// poked once per mutation burst and emits one debounced settle event per
// burst, carrying the final URL.
package watch

import (
	"sync"
	"time"
)

// defaultQuietPeriod is how long the URL must stay unchanged before a
// settle event fires
const defaultQuietPeriod = time.Second

// Source returns the page URL as currently observed
type Source func() string

// SettleFunc receives the settled URL after a quiet period
type SettleFunc func(url string)

// Watcher turns bursts of mutation notifications into single settle
// events. Only the trailing edge of a burst fires: every URL change seen
// inside one quiet window re-arms the timer, and the event that finally
// fires carries the URL observed at fire time, not any intermediate one.
type Watcher struct {
	source   Source
	onSettle SettleFunc
	quiet    time.Duration

	mu       sync.Mutex
	lastSeen string
	timer    *time.Timer
	arm      uint64
}

// Option configures the Watcher
type Option func(*Watcher)

// WithQuietPeriod overrides the debounce quiet period
func WithQuietPeriod(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.quiet = d
		}
	}
}

// New creates a watcher over the given URL source. The watcher seeds its
// last-seen URL from the source, so the page present at startup does not
// itself produce a settle event.
func New(source Source, onSettle SettleFunc, opts ...Option) (*Watcher, error) {
	if source == nil {
		return nil, ErrMissingSource
	}

	if onSettle == nil {
		return nil, ErrMissingSettleFunc
	}

	w := &Watcher{
		source:   source,
		onSettle: onSettle,
		quiet:    defaultQuietPeriod,
		lastSeen: source(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Notify is called once per observed mutation batch. It never blocks: a
// URL change only records the new URL and (re)arms the settle timer.
func (w *Watcher) Notify() {
	current := w.source()

	w.mu.Lock()
	defer w.mu.Unlock()

	if current == w.lastSeen {
		return
	}

	// Record immediately so further batches for the same URL do not
	// schedule overlapping settles.
	w.lastSeen = current

	// Every (re)arm carries a fresh stamp. A timer that already fired
	// but has not yet run its settle holds a superseded stamp and will
	// discard itself, so one burst can never emit twice.
	w.arm++
	stamp := w.arm

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.quiet, func() {
		w.settle(stamp)
	})
}

// settle fires on the trailing edge of a burst. The stamp check and the
// source read happen under the same lock, so the delivered URL is the one
// current for the arm that fired; triggers built from it must not re-read
// the URL later.
func (w *Watcher) settle(stamp uint64) {
	w.mu.Lock()

	if stamp != w.arm {
		// A newer change re-armed the watcher after this timer fired.
		w.mu.Unlock()
		return
	}

	settled := w.source()
	w.lastSeen = settled
	w.timer = nil
	w.mu.Unlock()

	w.onSettle(settled)
}
