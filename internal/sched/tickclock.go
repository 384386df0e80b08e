// internal/sched/tickclock.go

package sched

import (
	"sync/atomic"
	"time"
)

// TickClock paces a run against wall time. The simulation itself only
// follows the driver's tick counter; the clock never changes its outcome.
type TickClock struct {
	beat  chan struct{}
	done  chan struct{}
	paced atomic.Int64
}

// NewTickClock starts a clock beating every interval.
func NewTickClock(interval time.Duration) *TickClock {
	c := &TickClock{
		beat: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go c.loop(time.NewTicker(interval))
	return c
}

func (c *TickClock) loop(t *time.Ticker) {
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-t.C:
		}
		// a driver that fell behind gets one pending beat, not a backlog
		select {
		case c.beat <- struct{}{}:
		default:
		}
	}
}

// Wait blocks until the next beat and counts it as a paced tick.
func (c *TickClock) Wait() {
	<-c.beat
	c.paced.Add(1)
}

// Stop ends the clock. It must be called exactly once.
func (c *TickClock) Stop() {
	close(c.done)
}

// Paced is the number of ticks Wait has released so far.
func (c *TickClock) Paced() int64 {
	return c.paced.Load()
}
