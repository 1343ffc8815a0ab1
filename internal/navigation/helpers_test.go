package navigation

import (
	"bytes"
	"log/slog"
	"sort"
	"time"
)

// manualScheduler fires callbacks only when the test advances it.
type manualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at        time.Duration
	fn        func()
	fired     bool
	cancelled bool
}

func (t *manualTimer) Cancel() { t.cancelled = true }

func (s *manualScheduler) After(d time.Duration, fn func()) Handle {
	t := &manualTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		due := s.due()
		if len(due) == 0 {
			return
		}
		t := due[0]
		t.fired = true
		t.fn()
	}
}

func (s *manualScheduler) due() []*manualTimer {
	var out []*manualTimer
	for _, t := range s.timers {
		if !t.fired && !t.cancelled && t.at <= s.now {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })
	return out
}

// Scheduled counts every timer ever created.
func (s *manualScheduler) Scheduled() int { return len(s.timers) }

type historyWrite struct {
	repr    string
	replace bool
}

type fakeHistory struct {
	loc    Location
	writes []historyWrite
	err    error
}

func (h *fakeHistory) Read() Location { return h.loc }

func (h *fakeHistory) Write(repr string, replace bool) error {
	if h.err != nil {
		return h.err
	}
	h.writes = append(h.writes, historyWrite{repr: repr, replace: replace})
	return nil
}

type fakeView struct {
	shown   []string
	missing map[string]bool
}

func (v *fakeView) Show(sec Section, _ bool) error {
	if v.missing[sec.Name] {
		return ErrElementMissing
	}
	v.shown = append(v.shown, sec.Name)
	return nil
}

type fixture struct {
	ctrl    *Controller
	sched   *manualScheduler
	history *fakeHistory
	view    *fakeView
	logs    *bytes.Buffer
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		sched:   &manualScheduler{},
		history: &fakeHistory{},
		view:    &fakeView{missing: map[string]bool{}},
		logs:    &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	base := []Option{
		WithScheduler(f.sched),
		WithHistory(f.history, RepresentFragment),
		WithView(f.view),
		WithLogger(logger),
	}
	f.ctrl = New(MustRegistry(DefaultSections...), append(base, opts...)...)
	return f
}

// settle lets the cooldown of the last transition elapse.
func (f *fixture) settle() {
	f.sched.Advance(DefaultCooldown)
}
