package navigation

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSections is the page order of the portfolio.
var DefaultSections = []string{"intro", "about", "projects", "contact"}

// Section is one named region of the page. Index is its position in
// navigation order.
type Section struct {
	Name  string
	Index int
}

func (s Section) String() string {
	return s.Name
}

// Registry is the fixed, ordered list of sections on the page. It is
// immutable after NewRegistry returns.
type Registry struct {
	sections []Section
	byName   map[string]int
}

// NewRegistry builds a registry from names in navigation order.
func NewRegistry(names ...string) (*Registry, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("navigation: registry needs at least one section")
	}

	r := &Registry{
		sections: make([]Section, 0, len(names)),
		byName:   make(map[string]int, len(names)),
	}
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("navigation: section %d has an empty name", i)
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("navigation: duplicate section %q", name)
		}
		r.byName[name] = i
		r.sections = append(r.sections, Section{Name: name, Index: i})
	}
	return r, nil
}

// MustRegistry is NewRegistry for static section lists. It panics on error.
func MustRegistry(names ...string) *Registry {
	r, err := NewRegistry(names...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds a section by name.
func (r *Registry) Lookup(name string) (Section, error) {
	i, ok := r.byName[name]
	if !ok {
		return Section{}, &Error{Op: "lookup", Target: name, Err: ErrUnknownSection}
	}
	return r.sections[i], nil
}

// At returns the section at index.
func (r *Registry) At(index int) (Section, error) {
	if index < 0 || index >= len(r.sections) {
		return Section{}, &Error{Op: "at", Target: strconv.Itoa(index), Err: ErrOutOfRange}
	}
	return r.sections[index], nil
}

// Count returns the number of sections.
func (r *Registry) Count() int {
	return len(r.sections)
}

// First returns the top section.
func (r *Registry) First() Section {
	return r.sections[0]
}

// Last returns the bottom section.
func (r *Registry) Last() Section {
	return r.sections[len(r.sections)-1]
}

// Names returns section names in navigation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sections))
	for i, s := range r.sections {
		names[i] = s.Name
	}
	return names
}

// Sections returns a copy of the registered sections.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}
