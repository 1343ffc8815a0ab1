package navigation

import (
	"math"
	"strings"
	"time"
)

// DefaultWheelThreshold is the minimum vertical delta of one wheel event that
// pages the view.
const DefaultWheelThreshold = 50.0

// Restore delays let the page layout settle before section offsets are measured.
const (
	FragmentDelay = 100 * time.Millisecond
	RestoreDelay  = 200 * time.Millisecond
)

// WheelEvent is one observed wheel event.
type WheelEvent struct {
	DeltaY    float64
	prevented bool
}

// PreventDefault suppresses the native scroll for this event.
func (e *WheelEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *WheelEvent) DefaultPrevented() bool { return e.prevented }

// WheelAdapter turns a wheel delta into Next or Previous.
type WheelAdapter struct {
	Threshold float64
}

// Observe always prevents the native scroll so the page stays paged, then
// emits at most one intent.
func (a WheelAdapter) Observe(e *WheelEvent) (Intent, bool) {
	e.PreventDefault()

	threshold := a.Threshold
	if threshold <= 0 {
		threshold = DefaultWheelThreshold
	}
	switch {
	case e.DeltaY > threshold:
		return Next(SourceWheel), true
	case e.DeltaY < -threshold:
		return Previous(SourceWheel), true
	}
	return Intent{}, false
}

// KeyEvent is one observed key press. Key uses DOM key names.
type KeyEvent struct {
	Key       string
	prevented bool
}

func (e *KeyEvent) PreventDefault() { e.prevented = true }

func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }

// KeyboardAdapter maps paging keys to intents. End jumps to EndSection.
type KeyboardAdapter struct {
	EndSection string
}

// Observe ignores every key while a transition is in progress.
func (a KeyboardAdapter) Observe(e *KeyEvent, transitioning bool) (Intent, bool) {
	if transitioning {
		return Intent{}, false
	}

	var in Intent
	switch e.Key {
	case "ArrowDown", "PageDown":
		in = Next(SourceKeyboard)
	case "ArrowUp", "PageUp":
		in = Previous(SourceKeyboard)
	case "Home":
		in = ToTop(SourceKeyboard)
	case "End":
		in = GoToName(a.EndSection, SourceKeyboard)
	default:
		return Intent{}, false
	}
	e.PreventDefault()
	return in, true
}

// SectionOffset is the measured top of a section element. Sections without an
// element on the page are simply absent.
type SectionOffset struct {
	Index int
	Top   float64
}

// ScrollPosition is one scroll observation in continuous mode.
type ScrollPosition struct {
	ScrollY        float64
	ViewportHeight float64
	Offsets        []SectionOffset
}

// ScrollAdapter reports the section under the reference line, one third of
// the viewport below the scroll offset.
type ScrollAdapter struct{}

func (ScrollAdapter) Observe(p ScrollPosition, current int) (Intent, bool) {
	ref := p.ScrollY + p.ViewportHeight/3

	best, bestTop := -1, math.Inf(-1)
	for _, o := range p.Offsets {
		if o.Top <= ref && o.Top >= bestTop {
			best, bestTop = o.Index, o.Top
		}
	}
	if best < 0 || best == current {
		return Intent{}, false
	}
	return GoToIndex(best, SourceScroll), true
}

// Flags are navigation state injected by the page that navigated here.
type Flags struct {
	FromProjects   bool
	FromNavigation bool
}

// Location is what the address bar and history entry say.
type Location struct {
	Path     string
	Fragment string
	Flags    Flags
}

// Restore is a deferred, URL-driven intent.
type Restore struct {
	Intent Intent
	Delay  time.Duration
}

// DefaultAliases maps bare path segments to the section they open.
var DefaultAliases = map[string]string{
	"about":   "about",
	"project": "projects",
	"contact": "contact",
}

// FragmentAdapter reads the target section out of a Location.
type FragmentAdapter struct {
	Aliases         map[string]string
	ProjectsSection string

	seenNavigationEnd bool
}

// Load resolves the initial target of a fresh page: the fragment first, then
// the path alias.
func (a *FragmentAdapter) Load(loc Location) (Restore, bool) {
	if name := strings.TrimPrefix(loc.Fragment, "#"); name != "" {
		return Restore{Intent: GoToName(name, SourceURL), Delay: RestoreDelay}, true
	}
	if name, ok := a.alias(loc.Path); ok {
		return Restore{Intent: GoToName(name, SourceURL), Delay: RestoreDelay}, true
	}
	return Restore{}, false
}

// NavigationEnd resolves the target of a routed navigation. The first call
// after load is the initial paint and never yields a restore. Fragments are
// only followed on the home view; an alias path such as /about keeps its
// section.
func (a *FragmentAdapter) NavigationEnd(loc Location) (Restore, bool) {
	if !a.seenNavigationEnd {
		a.seenNavigationEnd = true
		return Restore{}, false
	}
	if loc.Flags.FromProjects && a.ProjectsSection != "" {
		return Restore{Intent: GoToName(a.ProjectsSection, SourceURL), Delay: RestoreDelay}, true
	}
	if name := strings.TrimPrefix(loc.Fragment, "#"); name != "" && isHomePath(loc.Path) {
		delay := FragmentDelay
		if loc.Flags.FromNavigation {
			delay = RestoreDelay
		}
		return Restore{Intent: GoToName(name, SourceURL), Delay: delay}, true
	}
	return Restore{}, false
}

// isHomePath reports whether path is the home view, served at / and /home.
func isHomePath(path string) bool {
	seg := strings.Trim(path, "/")
	return seg == "" || seg == "home" || strings.HasPrefix(seg, "home/")
}

func (a *FragmentAdapter) alias(path string) (string, bool) {
	seg := strings.Trim(path, "/")
	if seg == "" {
		return "", false
	}
	aliases := a.Aliases
	if aliases == nil {
		aliases = DefaultAliases
	}
	name, ok := aliases[seg]
	return name, ok
}
