package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheelAdapter(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  Kind
		emits bool
	}{
		{"down past threshold", 120, KindNext, true},
		{"up past threshold", -120, KindPrevious, true},
		{"at threshold", 50, 0, false},
		{"small jitter", 12, 0, false},
		{"small negative", -49, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &WheelEvent{DeltaY: tt.delta}
			in, ok := WheelAdapter{}.Observe(e)

			assert.True(t, e.DefaultPrevented(), "native scroll must always be suppressed")
			require.Equal(t, tt.emits, ok)
			if ok {
				assert.Equal(t, tt.want, in.Kind)
				assert.Equal(t, SourceWheel, in.Source)
			}
		})
	}
}

func TestWheelAdapterCustomThreshold(t *testing.T) {
	_, ok := WheelAdapter{Threshold: 200}.Observe(&WheelEvent{DeltaY: 120})
	assert.False(t, ok)
}

func TestKeyboardAdapter(t *testing.T) {
	a := KeyboardAdapter{EndSection: "contact"}
	tests := []struct {
		key  string
		want Intent
	}{
		{"ArrowDown", Next(SourceKeyboard)},
		{"PageDown", Next(SourceKeyboard)},
		{"ArrowUp", Previous(SourceKeyboard)},
		{"PageUp", Previous(SourceKeyboard)},
		{"Home", ToTop(SourceKeyboard)},
		{"End", GoToName("contact", SourceKeyboard)},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e := &KeyEvent{Key: tt.key}
			in, ok := a.Observe(e, false)
			require.True(t, ok)
			assert.Equal(t, tt.want, in)
			assert.True(t, e.DefaultPrevented())
		})
	}

	t.Run("unmapped", func(t *testing.T) {
		e := &KeyEvent{Key: "a"}
		_, ok := a.Observe(e, false)
		assert.False(t, ok)
		assert.False(t, e.DefaultPrevented())
	})

	t.Run("ignored while transitioning", func(t *testing.T) {
		e := &KeyEvent{Key: "ArrowDown"}
		_, ok := a.Observe(e, true)
		assert.False(t, ok)
	})
}

func TestScrollAdapter(t *testing.T) {
	offsets := []SectionOffset{{0, 0}, {1, 900}, {2, 1800}, {3, 2700}}

	tests := []struct {
		name    string
		scrollY float64
		current int
		want    int
		emits   bool
	}{
		{"top of page", 0, 0, 0, false},
		{"reference crosses about", 650, 0, 1, true},
		{"just short of about", 550, 0, 0, false},
		{"deep in projects", 1900, 1, 2, true},
		{"already on contact", 2600, 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ok := ScrollAdapter{}.Observe(ScrollPosition{
				ScrollY:        tt.scrollY,
				ViewportHeight: 900,
				Offsets:        offsets,
			}, tt.current)
			require.Equal(t, tt.emits, ok)
			if ok {
				assert.Equal(t, GoToIndex(tt.want, SourceScroll), in)
			}
		})
	}
}

func TestScrollAdapterSkipsMissingElements(t *testing.T) {
	// The about element is not on the page.
	offsets := []SectionOffset{{0, 0}, {2, 1800}}
	_, ok := ScrollAdapter{}.Observe(ScrollPosition{ScrollY: 1000, ViewportHeight: 900, Offsets: offsets}, 0)
	assert.False(t, ok)

	in, ok := ScrollAdapter{}.Observe(ScrollPosition{ScrollY: 1600, ViewportHeight: 900, Offsets: offsets}, 0)
	require.True(t, ok)
	assert.Equal(t, 2, in.Index)
}

func TestFragmentAdapterLoad(t *testing.T) {
	tests := []struct {
		name   string
		loc    Location
		target string
		ok     bool
	}{
		{"fragment", Location{Path: "/", Fragment: "projects"}, "projects", true},
		{"hash prefix", Location{Fragment: "#about"}, "about", true},
		{"path alias", Location{Path: "/project"}, "projects", true},
		{"home path", Location{Path: "/home"}, "", false},
		{"root", Location{Path: "/"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &FragmentAdapter{ProjectsSection: "projects"}
			r, ok := a.Load(tt.loc)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, GoToName(tt.target, SourceURL), r.Intent)
				assert.Equal(t, RestoreDelay, r.Delay)
			}
		})
	}
}

func TestFragmentAdapterSuppressesFirstNavigationEnd(t *testing.T) {
	a := &FragmentAdapter{ProjectsSection: "projects"}
	loc := Location{Path: "/home", Fragment: "about"}

	_, ok := a.NavigationEnd(loc)
	assert.False(t, ok, "first navigation-end is the initial paint")

	r, ok := a.NavigationEnd(loc)
	require.True(t, ok)
	assert.Equal(t, GoToName("about", SourceURL), r.Intent)
	assert.Equal(t, FragmentDelay, r.Delay)

	r, ok = a.NavigationEnd(Location{Path: "/home", Flags: Flags{FromProjects: true}})
	require.True(t, ok)
	assert.Equal(t, GoToName("projects", SourceURL), r.Intent)
	assert.Equal(t, RestoreDelay, r.Delay)
}

func TestFragmentAdapterFollowsFragmentsOnlyOnHome(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home", true},
		{"/", true},
		{"", true},
		{"/home/", true},
		{"/about", false},
		{"/contact", false},
		{"/homework", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			a := &FragmentAdapter{ProjectsSection: "projects"}
			a.NavigationEnd(Location{})

			_, ok := a.NavigationEnd(Location{Path: tt.path, Fragment: "contact"})
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestFragmentAdapterFromProjectsOnAnyPath(t *testing.T) {
	a := &FragmentAdapter{ProjectsSection: "projects"}
	a.NavigationEnd(Location{})

	r, ok := a.NavigationEnd(Location{Path: "/about", Flags: Flags{FromProjects: true}})
	require.True(t, ok)
	assert.Equal(t, GoToName("projects", SourceURL), r.Intent)
}
