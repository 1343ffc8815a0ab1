package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContent(t *testing.T) {
	s := Default()

	assert.NotEmpty(t, s.About)
	assert.Len(t, s.Projects, 4)
	assert.Len(t, s.Work, 2)
	assert.Len(t, s.Education, 2)
	assert.NotEmpty(t, s.TypingPhrases)
	assert.Equal(t, "/static/resume.pdf", s.Resume.Path)

	p, err := s.Project("portfolio")
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", p.Title)

	_, err = s.Project("nope")
	assert.True(t, errors.Is(err, ErrUnknownProject))
}

func TestParseRejectsBadContent(t *testing.T) {
	tests := map[string]string{
		"no name":      `about = "x"`,
		"duplicate id": "name = \"a\"\n[[projects]]\nid = \"x\"\n[[projects]]\nid = \"x\"\n",
		"missing id":   "name = \"a\"\n[[projects]]\ntitle = \"x\"\n",
		"unknown key":  "name = \"a\"\ncolour = \"red\"\n",
		"invalid toml": "name = ",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestStatDisplay(t *testing.T) {
	assert.Equal(t, "4+", Stat{Value: 4, Suffix: "+"}.Display())
	assert.Equal(t, "3.8", Stat{Value: 38, Scale: 10}.Display())
}

func TestSourceFallsBackToEmbedded(t *testing.T) {
	s, err := NewSource("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Name, s.Site().Name)
	assert.NoError(t, s.Watch(context.Background()))
}

func TestSourceMissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}

func TestSourceReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	require.NoError(t, os.WriteFile(path, []byte(`name = "First"`), 0o644))

	s, err := NewSource(path, nil)
	require.NoError(t, err)
	require.Equal(t, "First", s.Site().Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte(`name = "Second"`), 0o644))
	require.Eventually(t, func() bool {
		return s.Site().Name == "Second"
	}, 2*time.Second, 10*time.Millisecond)

	// A broken write keeps the last good content.
	require.NoError(t, os.WriteFile(path, []byte(`name = `), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "Second", s.Site().Name)
}

func TestSourceReloadsAfterRenameSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.toml")
	require.NoError(t, os.WriteFile(path, []byte(`name = "First"`), 0o644))

	s, err := NewSource(path, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx))

	save := func(name string) {
		tmp := filepath.Join(dir, ".content.toml.swp")
		require.NoError(t, os.WriteFile(tmp, []byte(`name = "`+name+`"`), 0o644))
		require.NoError(t, os.Rename(tmp, path))
	}

	for _, name := range []string{"Second", "Third"} {
		save(name)
		require.Eventually(t, func() bool {
			return s.Site().Name == name
		}, 2*time.Second, 10*time.Millisecond)
	}

	// Other files in the directory are ignored.
	reloads := s.Reloads()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, reloads, s.Reloads())
}
