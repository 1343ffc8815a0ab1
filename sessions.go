package main

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.uber.org/atomic"

	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/navigation"
)

const sessionCookie = "nav_session"

// pageHistory is the address bar of one visitor's page. Reads come from the
// last request; writes are handed back to the browser as HX-Replace-Url.
type pageHistory struct {
	mu      sync.Mutex
	loc     navigation.Location
	written string
}

func (h *pageHistory) Read() navigation.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loc
}

func (h *pageHistory) Write(repr string, _ bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.written = repr
	return nil
}

func (h *pageHistory) observe(loc navigation.Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loc = loc
}

// take returns and clears the pending write.
func (h *pageHistory) take() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	w := h.written
	h.written = ""
	return w
}

// pageView remembers which section the browser should scroll to next.
type pageView struct {
	mu     sync.Mutex
	target string
}

func (v *pageView) Show(sec navigation.Section, _ bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.target = sec.Name
	return nil
}

func (v *pageView) take() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	t := v.target
	v.target = ""
	return t
}

// session is one visitor's page: a navigation controller plus contact form.
type session struct {
	id      string
	mu      sync.Mutex // serializes requests
	ctrl    *navigation.Controller
	history *pageHistory
	view    *pageView
	form    *mailer.Form

	lastSeen time.Time // guarded by sessions.mu
}

// sessions maps the visitor cookie to a session and evicts idle ones.
type sessions struct {
	mu     sync.Mutex
	items  map[string]*session
	ttl    time.Duration
	clock  clockz.Clock
	logger *slog.Logger
	active *atomic.Int64

	newController func(s *session) *navigation.Controller
	newForm       func() *mailer.Form
}

func newSessions(ttl time.Duration, clock clockz.Clock, logger *slog.Logger) *sessions {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &sessions{
		items:  map[string]*session{},
		ttl:    ttl,
		clock:  clock,
		logger: logger,
		active: atomic.NewInt64(0),
	}
}

// get returns the visitor's session, creating it if needed. The cookie is
// re-issued on every call so its expiry slides with the idle TTL.
func (m *sessions) get(c *gin.Context) *session {
	id, err := c.Cookie(sessionCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.items[id]
	if !ok {
		s = &session{id: id, history: &pageHistory{}, view: &pageView{}, form: m.newForm()}
		s.ctrl = m.newController(s)
		m.items[id] = s
		m.active.Inc()
	}
	s.lastSeen = m.clock.Now()
	c.SetCookie(sessionCookie, id, int(m.ttl.Seconds()), "/", "", false, true)
	return s
}

// reset starts a fresh page for the visitor, as a full page load does.
func (m *sessions) reset(c *gin.Context) *session {
	s := m.get(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Close()
	s.history = &pageHistory{}
	s.view = &pageView{}
	s.ctrl = m.newController(s)
	return s
}

// Len is the number of live sessions.
func (m *sessions) Len() int64 {
	return m.active.Load()
}

// sweep closes sessions idle for longer than the TTL.
func (m *sessions) sweep() int {
	now := m.clock.Now()
	var idle []*session

	m.mu.Lock()
	for id, s := range m.items {
		if now.Sub(s.lastSeen) >= m.ttl {
			idle = append(idle, s)
			delete(m.items, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.mu.Lock()
		s.ctrl.Close()
		s.mu.Unlock()
		m.active.Dec()
	}
	if len(idle) > 0 {
		m.logger.Debug("evicted idle navigation sessions", "count", len(idle))
	}
	return len(idle)
}

// run sweeps every interval until ctx is done.
func (m *sessions) run(ctx context.Context, interval time.Duration) {
	timer := m.clock.NewTimer(interval)
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
			m.sweep()
			timer.Reset(interval)
		}
	}
}

// closeAll tears down every session on shutdown.
func (m *sessions) closeAll() {
	m.mu.Lock()
	items := m.items
	m.items = map[string]*session{}
	m.mu.Unlock()
	for _, s := range items {
		s.ctrl.Close()
		m.active.Dec()
	}
}

// locationFromRequest rebuilds the browser location. htmx sends the full URL,
// fragment included, in HX-Current-URL; plain form posts name the parts.
func locationFromRequest(c *gin.Context) navigation.Location {
	var loc navigation.Location
	if raw := c.GetHeader("HX-Current-URL"); raw != "" {
		if u, err := url.Parse(raw); err == nil {
			loc.Path, loc.Fragment = u.Path, u.Fragment
			loc.Flags = parseFlags(u.Query().Get("from"))
		}
	}
	if p := c.PostForm("path"); p != "" {
		loc.Path = p
	}
	if f := c.PostForm("fragment"); f != "" {
		loc.Fragment = f
	}
	if from := c.PostForm("from"); from != "" {
		loc.Flags = parseFlags(from)
	}
	return loc
}

func parseFlags(from string) navigation.Flags {
	switch from {
	case "projects":
		return navigation.Flags{FromProjects: true}
	case "navigation":
		return navigation.Flags{FromNavigation: true}
	}
	return navigation.Flags{}
}
