package navigation

// State is the single source of truth for the page session. Only the
// Controller writes it; everyone else reads a Snapshot.
type State struct {
	current       int
	transitioning bool
	menuOpen      bool
	footerVisible bool
}

func (s *State) setCurrent(index, count int) {
	s.current = index
	s.footerVisible = index == count-1
}

func (s *State) setTransitioning(v bool) {
	s.transitioning = v
}

func (s *State) setMenuOpen(v bool) {
	s.menuOpen = v
}

// Snapshot is a read-only copy of State taken under the controller lock.
type Snapshot struct {
	section       Section
	transitioning bool
	menuOpen      bool
	footerVisible bool
}

// Current returns the visible section.
func (s Snapshot) Current() Section { return s.section }

// IsTransitioning reports whether a cooldown is running.
func (s Snapshot) IsTransitioning() bool { return s.transitioning }

// MenuOpen reports whether the overlay menu is open.
func (s Snapshot) MenuOpen() bool { return s.menuOpen }

// FooterVisible is true only on the last section.
func (s Snapshot) FooterVisible() bool { return s.footerVisible }
