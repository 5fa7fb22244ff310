package catalog_test

import (
	"time"

	"github.com/derickschaefer/reel/internal/catalog"
)

// manualClock fires timers synchronously from Advance.
type manualClock struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at   time.Duration
	f    func()
	done bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) catalog.Timer {
	t := &manualTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.now += d
	for i := 0; i < len(c.timers); i++ {
		t := c.timers[i]
		if !t.done && t.at <= c.now {
			t.done = true
			t.f()
		}
	}
}

// armed counts timers that have neither fired nor been stopped.
func (c *manualClock) armed() int {
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}
