// Package content holds the text shown on the portfolio page.
//
// Content is a TOML document. A default copy is embedded in the binary; a
// file on disk can replace it and is reloaded when it changes.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultTOML []byte

// ErrUnknownProject is returned by Site.Project for ids that are not listed.
var ErrUnknownProject = errors.New("unknown project")

type Project struct {
	ID      string   `toml:"id"`
	Title   string   `toml:"title"`
	Summary string   `toml:"summary"`
	Tech    []string `toml:"tech"`
	Link    string   `toml:"link"`
}

// Entry is one work or education item.
type Entry struct {
	Title   string   `toml:"title"`
	Org     string   `toml:"org"`
	Start   string   `toml:"start"`
	End     string   `toml:"end"`
	Logo    string   `toml:"logo"`
	Bullets []string `toml:"bullets"`
}

// Stat is an animated counter. Scale divides Value for display, so 38 with
// scale 10 reads "3.8".
type Stat struct {
	Label  string `toml:"label"`
	Value  int    `toml:"value"`
	Scale  int    `toml:"scale"`
	Suffix string `toml:"suffix"`
}

func (s Stat) Display() string {
	if s.Scale <= 1 {
		return strconv.Itoa(s.Value) + s.Suffix
	}
	return strconv.FormatFloat(float64(s.Value)/float64(s.Scale), 'f', -1, 64) + s.Suffix
}

type Resume struct {
	Path     string `toml:"path"`
	Filename string `toml:"filename"`
}

// Site is the whole page content.
type Site struct {
	Name          string    `toml:"name"`
	Tagline       string    `toml:"tagline"`
	About         string    `toml:"about"`
	TypingPhrases []string  `toml:"typing_phrases"`
	Stats         []Stat    `toml:"stats"`
	Resume        Resume    `toml:"resume"`
	Projects      []Project `toml:"projects"`
	Work          []Entry   `toml:"work"`
	Education     []Entry   `toml:"education"`
}

// Parse decodes and checks a content document.
func Parse(data []byte) (*Site, error) {
	var s Site
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("decode content: unknown keys %v", keys)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the embedded content.
func Default() *Site {
	s, err := Parse(defaultTOML)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Site) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("content: name is required")
	}
	seen := make(map[string]bool, len(s.Projects))
	for i, p := range s.Projects {
		if p.ID == "" {
			return fmt.Errorf("content: project %d has no id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("content: duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Project looks a project up by id.
func (s *Site) Project(id string) (Project, error) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: %q", ErrUnknownProject, id)
}
