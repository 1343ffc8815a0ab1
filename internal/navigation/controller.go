package navigation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
)

// DefaultCooldown is how long gated intents are dropped after a transition.
const DefaultCooldown = time.Second

// Mode is the operating mode of a deployment. It never changes at runtime.
type Mode int

const (
	// ModePaged locks native scroll and pages one section per gesture.
	ModePaged Mode = iota
	// ModeContinuous lets the page scroll freely and tracks the visible section.
	ModeContinuous
)

func (m Mode) String() string {
	if m == ModeContinuous {
		return "continuous"
	}
	return "paged"
}

// ParseMode accepts "paged" or "continuous".
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "paged":
		return ModePaged, nil
	case "continuous":
		return ModeContinuous, nil
	}
	return ModePaged, fmt.Errorf("navigation: unknown mode %q", raw)
}

// View is the presentation side effect of a transition.
type View interface {
	Show(sec Section, footerVisible bool) error
}

// Outcome classifies what a dispatch did.
type Outcome int

const (
	Accepted Outcome = iota
	NoOp
	Dropped
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case NoOp:
		return "noop"
	case Dropped:
		return "dropped"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is returned by every dispatch. Section is the current section after
// the dispatch. Err is set only for Rejected.
type Result struct {
	Outcome Outcome
	Section Section
	Err     error
}

// Change is delivered to listeners for every accepted transition.
type Change struct {
	From   Section
	To     Section
	Source Source
}

// Option configures a Controller.
type Option func(*Controller)

func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

func WithCooldown(d time.Duration) Option {
	return func(c *Controller) { c.cooldown = d }
}

func WithWheelThreshold(t float64) Option {
	return func(c *Controller) { c.wheel.Threshold = t }
}

func WithHistory(port HistoryPort, repr Representation) Option {
	return func(c *Controller) { c.history = NewSynchronizer(port, repr) }
}

func WithView(v View) Option {
	return func(c *Controller) { c.view = v }
}

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithAliases(aliases map[string]string) Option {
	return func(c *Controller) { c.fragments.Aliases = aliases }
}

// Controller serializes intents into state changes. One transition runs at a
// time; gated intents arriving during the cooldown are dropped.
type Controller struct {
	mu sync.Mutex

	registry  *Registry
	mode      Mode
	cooldown  time.Duration
	state     State
	history   *Synchronizer
	view      View
	scheduler Scheduler
	logger    *slog.Logger
	listeners []func(Change)

	wheel     WheelAdapter
	keys      KeyboardAdapter
	scroll    ScrollAdapter
	fragments *FragmentAdapter

	cooldownTimer Handle
	cooldownGen   uint64
	restoreTimer  Handle
	restoreGen    uint64
	closed        bool
}

// New returns a controller positioned on the first section.
func New(reg *Registry, opts ...Option) *Controller {
	c := &Controller{
		registry: reg,
		mode:     ModePaged,
		cooldown: DefaultCooldown,
		history:  NewSynchronizer(nil, RepresentFragment),
		logger:   slog.Default(),
		keys:     KeyboardAdapter{EndSection: reg.Last().Name},
		fragments: &FragmentAdapter{
			ProjectsSection: projectsSection(reg),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scheduler == nil {
		c.scheduler = NewClockScheduler(nil)
	}
	c.state.setCurrent(0, reg.Count())
	return c
}

func projectsSection(reg *Registry) string {
	if _, err := reg.Lookup("projects"); err == nil {
		return "projects"
	}
	return ""
}

// Registry returns the section registry.
func (c *Controller) Registry() *Registry { return c.registry }

// Mode returns the operating mode.
func (c *Controller) Mode() Mode { return c.mode }

// Snapshot returns a copy of the navigation state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() Snapshot {
	sec, _ := c.registry.At(c.state.current)
	return Snapshot{
		section:       sec,
		transitioning: c.state.transitioning,
		menuOpen:      c.state.menuOpen,
		footerVisible: c.state.footerVisible,
	}
}

// IsActive reports whether name is the current section.
func (c *Controller) IsActive(name string) bool {
	return c.Snapshot().Current().Name == name
}

// OnChange registers a listener. Listeners run after the controller lock is
// released, in registration order.
func (c *Controller) OnChange(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Dispatch runs one intent through the state machine.
func (c *Controller) Dispatch(in Intent) Result {
	c.mu.Lock()
	res, change := c.dispatch(in)
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, change)
	return res
}

// ScrollToSection navigates to name even while a cooldown is running.
func (c *Controller) ScrollToSection(name string) Result {
	return c.Dispatch(GoToName(name, SourceExplicit))
}

// ScrollToTop navigates to the first section, overriding the cooldown.
func (c *Controller) ScrollToTop() Result {
	return c.ScrollToSection(c.registry.First().Name)
}

// Next pages down as a click would.
func (c *Controller) Next() Result {
	return c.Dispatch(Next(SourceClick))
}

// Previous pages up as a click would.
func (c *Controller) Previous() Result {
	return c.Dispatch(Previous(SourceClick))
}

// Wheel feeds one wheel event. In continuous mode the native scroll is left
// alone and nothing is emitted.
func (c *Controller) Wheel(e *WheelEvent) Result {
	if c.mode != ModePaged {
		return c.current(NoOp)
	}
	in, ok := c.wheel.Observe(e)
	if !ok {
		return c.current(NoOp)
	}
	return c.Dispatch(in)
}

// Key feeds one key press.
func (c *Controller) Key(e *KeyEvent) Result {
	c.mu.Lock()
	transitioning := c.state.transitioning
	c.mu.Unlock()

	in, ok := c.keys.Observe(e, transitioning)
	if !ok {
		return c.current(NoOp)
	}
	return c.Dispatch(in)
}

// Scroll feeds one scroll observation to the passive tracker.
func (c *Controller) Scroll(p ScrollPosition) Result {
	c.mu.Lock()
	current := c.state.current
	c.mu.Unlock()

	in, ok := c.scroll.Observe(p, current)
	if !ok {
		return c.current(NoOp)
	}
	return c.Dispatch(in)
}

// ToggleMenu opens or closes the overlay menu and returns the new state.
func (c *Controller) ToggleMenu() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.setMenuOpen(!c.state.menuOpen)
	return c.state.menuOpen
}

// CloseMenu closes the overlay menu.
func (c *Controller) CloseMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.setMenuOpen(false)
}

// Load reads the location of a fresh page and defers the restore it names.
func (c *Controller) Load() (Restore, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.fragments.Load(c.history.Read())
	if ok {
		c.scheduleRestore(r)
	}
	return r, ok
}

// NavigationEnd handles a routed navigation that landed on this page.
func (c *Controller) NavigationEnd() (Restore, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.fragments.NavigationEnd(c.history.Read())
	if ok {
		c.scheduleRestore(r)
	}
	return r, ok
}

// Close cancels pending timers. Later dispatches are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.cooldownTimer != nil {
		c.cooldownTimer.Cancel()
		c.cooldownTimer = nil
	}
	if c.restoreTimer != nil {
		c.restoreTimer.Cancel()
		c.restoreTimer = nil
	}
	c.state.setTransitioning(false)
}

func (c *Controller) current(o Outcome) Result {
	return Result{Outcome: o, Section: c.Snapshot().Current()}
}

// dispatch must be called with c.mu held.
func (c *Controller) dispatch(in Intent) (Result, *Change) {
	cur, _ := c.registry.At(c.state.current)

	if c.closed {
		return Result{Outcome: Dropped, Section: cur}, nil
	}

	switch {
	case in.Source.Passive():
		if c.mode != ModeContinuous {
			c.logger.Debug("navigation: scroll report ignored in paged mode", "intent", in.String())
			return Result{Outcome: Dropped, Section: cur}, nil
		}
	case in.Source.Gated():
		if c.state.transitioning {
			c.emitDropped(in, "transitioning")
			return Result{Outcome: Dropped, Section: cur}, nil
		}
		if c.state.menuOpen {
			c.emitDropped(in, "menu open")
			return Result{Outcome: Dropped, Section: cur}, nil
		}
	}

	target, outcome, err := c.resolve(in, cur)
	if outcome != Accepted {
		return Result{Outcome: outcome, Section: cur, Err: err}, nil
	}
	if target.Index == cur.Index && (in.Source.Passive() || (in.Source.Gated() && c.mode == ModePaged)) {
		return Result{Outcome: NoOp, Section: cur}, nil
	}

	return c.apply(cur, target, in.Source)
}

func (c *Controller) resolve(in Intent, cur Section) (Section, Outcome, error) {
	var (
		target Section
		err    error
	)
	switch in.Kind {
	case KindGoToIndex:
		target, err = c.registry.At(in.Index)
	case KindGoToName:
		target, err = c.registry.Lookup(in.Name)
	case KindNext:
		if cur.Index >= c.registry.Count()-1 {
			return cur, NoOp, nil
		}
		target, err = c.registry.At(cur.Index + 1)
	case KindPrevious:
		if cur.Index == 0 {
			return cur, NoOp, nil
		}
		target, err = c.registry.At(cur.Index - 1)
	case KindToTop:
		target = c.registry.First()
	default:
		err = fmt.Errorf("navigation: unsupported intent kind %s", in.Kind)
	}
	if err != nil {
		c.logger.Warn("navigation: intent rejected", "intent", in.String(), "error", err)
		capitan.Emit(context.Background(), IntentRejected, KeyIntent.Field(in.String()), KeyError.Field(err.Error()))
		return cur, Rejected, err
	}
	return target, Accepted, nil
}

func (c *Controller) apply(from, to Section, src Source) (Result, *Change) {
	c.state.setCurrent(to.Index, c.registry.Count())
	if src.Forced() {
		c.state.setMenuOpen(false)
	}

	if c.view != nil && !src.Passive() {
		if err := c.view.Show(to, c.state.footerVisible); err != nil {
			c.logger.Warn("navigation: section not shown", "section", to.Name, "error", err)
		}
	}

	if src == SourceURL {
		c.history.Assume(to)
	} else if wrote, err := c.history.Record(to); err != nil {
		c.logger.Warn("navigation: history write failed", "section", to.Name, "error", err)
	} else if wrote {
		capitan.Emit(context.Background(), HistoryWritten, KeyURL.Field(c.history.Format(to)))
	}

	if !src.Passive() {
		c.startCooldown()
	}

	capitan.Emit(context.Background(), TransitionAccepted,
		KeyFrom.Field(from.Name),
		KeyTo.Field(to.Name),
		KeySource.Field(src.String()),
	)
	return Result{Outcome: Accepted, Section: to}, &Change{From: from, To: to, Source: src}
}

func (c *Controller) startCooldown() {
	if c.cooldownTimer != nil {
		c.cooldownTimer.Cancel()
	}
	c.cooldownGen++
	gen := c.cooldownGen
	c.state.setTransitioning(true)
	c.cooldownTimer = c.scheduler.After(c.cooldown, func() { c.endCooldown(gen) })
}

func (c *Controller) endCooldown(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.cooldownGen {
		return
	}
	c.state.setTransitioning(false)
	c.cooldownTimer = nil
	capitan.Emit(context.Background(), CooldownElapsed, KeyTo.Field(c.snapshot().Current().Name))
}

func (c *Controller) scheduleRestore(r Restore) {
	if c.closed {
		return
	}
	if c.restoreTimer != nil {
		c.restoreTimer.Cancel()
	}
	c.restoreGen++
	gen := c.restoreGen
	c.restoreTimer = c.scheduler.After(r.Delay, func() { c.runRestore(gen, r.Intent) })
	capitan.Emit(context.Background(), RestoreScheduled, KeyIntent.Field(r.Intent.String()), KeyDelay.Field(r.Delay))
}

func (c *Controller) runRestore(gen uint64, in Intent) {
	c.mu.Lock()
	if c.closed || gen != c.restoreGen {
		c.mu.Unlock()
		return
	}
	c.restoreTimer = nil
	_, change := c.dispatch(in)
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, change)
}

func (c *Controller) emitDropped(in Intent, reason string) {
	c.logger.Debug("navigation: intent dropped", "intent", in.String(), "reason", reason)
	capitan.Emit(context.Background(), IntentDropped, KeyIntent.Field(in.String()), KeyError.Field(reason))
}

func notify(listeners []func(Change), change *Change) {
	if change == nil {
		return
	}
	for _, fn := range listeners {
		fn(*change)
	}
}
