package navigation

// Representation is how a section appears in the address bar.
type Representation int

const (
	// RepresentFragment writes "#about".
	RepresentFragment Representation = iota
	// RepresentPath writes "/about".
	RepresentPath
)

// HistoryPort abstracts the browser address bar and history.
type HistoryPort interface {
	Read() Location
	Write(repr string, replace bool) error
}

// Synchronizer reflects the current section into history. Every write
// replaces the current entry, and a repeated identical write is skipped, so
// back/forward never fills up with one entry per section change.
type Synchronizer struct {
	port HistoryPort
	repr Representation
	last string
}

// NewSynchronizer returns a synchronizer on port. A nil port makes every call
// a no-op.
func NewSynchronizer(port HistoryPort, repr Representation) *Synchronizer {
	return &Synchronizer{port: port, repr: repr}
}

// Format renders sec in the configured representation.
func (s *Synchronizer) Format(sec Section) string {
	if s.repr == RepresentPath {
		return "/" + sec.Name
	}
	return "#" + sec.Name
}

// Record writes sec unless it was the last thing written. It reports whether a
// write happened.
func (s *Synchronizer) Record(sec Section) (bool, error) {
	if s.port == nil {
		return false, nil
	}
	repr := s.Format(sec)
	if repr == s.last {
		return false, nil
	}
	if err := s.port.Write(repr, true); err != nil {
		return false, err
	}
	s.last = repr
	return true, nil
}

// Assume marks sec as already reflected in the address bar. URL-driven
// restores use it so they never write back into history.
func (s *Synchronizer) Assume(sec Section) {
	s.last = s.Format(sec)
}

// Read returns the current location, or the zero Location without a port.
func (s *Synchronizer) Read() Location {
	if s.port == nil {
		return Location{}
	}
	return s.port.Read()
}
