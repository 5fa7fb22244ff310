package catalog

import (
	"strings"
	"time"
)

// DebounceDelay is how long input must be idle before it commits.
const DebounceDelay = 350 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. SystemClock is the real one; tests inject a
// manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules with time.AfterFunc.
type SystemClock struct{}

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// QueryIntake debounces raw input into commits.
//
// There is at most one armed timer. When it expires it does not touch the
// intake; it calls notify with the sequence number it was armed with, and
// the owner calls Fire from its own execution context. Fire ignores any
// sequence that has since been superseded by a keystroke or an immediate
// commit.
type QueryIntake struct {
	clock  Clock
	delay  time.Duration
	notify func(seq uint64)

	timer Timer
	seq   uint64
	raw   string
}

// NewQueryIntake creates an intake. A zero delay means DebounceDelay.
func NewQueryIntake(clock Clock, delay time.Duration, notify func(seq uint64)) *QueryIntake {
	if clock == nil {
		clock = SystemClock{}
	}
	if delay <= 0 {
		delay = DebounceDelay
	}
	if notify == nil {
		notify = func(uint64) {}
	}
	return &QueryIntake{clock: clock, delay: delay, notify: notify}
}

// Keystroke records the current raw input and restarts the debounce timer.
func (q *QueryIntake) Keystroke(raw string) {
	q.stop()
	q.seq++
	q.raw = raw
	seq := q.seq
	notify := q.notify
	q.timer = q.clock.AfterFunc(q.delay, func() { notify(seq) })
}

// Fire is called on the owner's context when the timer armed with seq
// expires. It returns the commit, or false if seq is stale.
func (q *QueryIntake) Fire(seq uint64) (Commit, bool) {
	if q.timer == nil || seq != q.seq {
		return Commit{}, false
	}
	q.timer = nil
	return Commit{Text: strings.TrimSpace(q.raw)}, true
}

// CommitNow cancels any pending timer and commits raw immediately.
func (q *QueryIntake) CommitNow(raw string) Commit {
	q.stop()
	q.seq++
	q.raw = raw
	return Commit{Text: strings.TrimSpace(raw)}
}

// Pending reports whether a debounce timer is armed.
func (q *QueryIntake) Pending() bool { return q.timer != nil }

func (q *QueryIntake) stop() {
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}
