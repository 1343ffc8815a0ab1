// Package theme stores the visitor's light/dark preference.
package theme

import (
	"strings"
	"sync"
)

// Theme is a colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse accepts "light" or "dark" in any case.
func Parse(raw string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Storage persists a preference between visits.
type Storage interface {
	Load() (Theme, bool)
	Save(Theme) error
}

// SystemPreference reports the OS colour scheme, if known.
type SystemPreference func() (Theme, bool)

// Store resolves the active theme: the stored choice wins, then the system
// preference, then Light.
type Store struct {
	mu      sync.Mutex
	storage Storage
	system  SystemPreference
	subs    map[int]chan Theme
	nextID  int
}

func NewStore(storage Storage, system SystemPreference) *Store {
	return &Store{storage: storage, system: system, subs: map[int]chan Theme{}}
}

func (s *Store) Preference() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preference()
}

func (s *Store) preference() Theme {
	if s.storage != nil {
		if t, ok := s.storage.Load(); ok {
			return t
		}
	}
	if s.system != nil {
		if t, ok := s.system(); ok {
			return t
		}
	}
	return Light
}

// Set persists t and notifies subscribers.
func (s *Store) Set(t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(t)
}

// Toggle flips the active theme and returns the new one.
func (s *Store) Toggle() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.preference().Opposite()
	return next, s.set(next)
}

func (s *Store) set(t Theme) error {
	if s.storage != nil {
		if err := s.storage.Save(t); err != nil {
			return err
		}
	}
	for _, ch := range s.subs {
		// Subscribers only need the latest value.
		select {
		case <-ch:
		default:
		}
		ch <- t
	}
	return nil
}

// Subscribe returns a channel that receives every change. The channel holds
// the latest value only. Call cancel to stop and close it.
func (s *Store) Subscribe() (<-chan Theme, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Theme, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}
