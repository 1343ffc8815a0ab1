package navigation

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Handle cancels a scheduled callback. Cancel is safe to call more than once
// and after the callback ran.
type Handle interface {
	Cancel()
}

// Scheduler runs fn once after d.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// ClockScheduler schedules callbacks on a clockz.Clock. Tests pass
// clockz.NewFakeClock() and advance it by hand.
type ClockScheduler struct {
	clock clockz.Clock
}

// NewClockScheduler returns a scheduler on clock, or on the real clock when
// clock is nil.
func NewClockScheduler(clock clockz.Clock) *ClockScheduler {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &ClockScheduler{clock: clock}
}

func (s *ClockScheduler) After(d time.Duration, fn func()) Handle {
	h := &timerHandle{
		timer: s.clock.NewTimer(d),
		done:  make(chan struct{}),
	}
	go func() {
		select {
		case <-h.timer.C():
			fn()
		case <-h.done:
		}
	}()
	return h
}

type timerHandle struct {
	timer clockz.Timer
	done  chan struct{}
	once  sync.Once
}

func (h *timerHandle) Cancel() {
	h.once.Do(func() {
		h.timer.Stop()
		close(h.done)
	})
}
