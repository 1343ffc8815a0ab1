package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/atomic"
)

// Source serves the current Site and swaps it when the file changes.
type Source struct {
	path    string
	current *atomic.Pointer[Site]
	reloads *atomic.Int64
	logger  *slog.Logger
}

// NewSource loads path, or the embedded content when path is empty.
func NewSource(path string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Source{path: path, current: atomic.NewPointer(Default()), reloads: atomic.NewInt64(0), logger: logger}
	if path == "" {
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Site returns the current content. Callers must not modify it.
func (s *Source) Site() *Site {
	return s.current.Load()
}

// Reloads counts successful reloads from disk.
func (s *Source) Reloads() int64 {
	return s.reloads.Load()
}

// Reload reads the file again. On error the previous content stays.
func (s *Source) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read content %s: %w", s.path, err)
	}
	site, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	s.current.Store(site)
	s.reloads.Inc()
	return nil
}

// Watch reloads the file on every write until ctx is done. It returns once
// the watch is established. The parent directory is watched so saves that
// rename a temp file over the content file keep triggering reloads.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	target := filepath.Clean(s.path)
	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.Reload(); err != nil {
					s.logger.Warn("content reload failed, keeping previous", "error", err)
					continue
				}
				s.logger.Info("content reloaded", "path", s.path)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("content watcher error", "error", err)
			}
		}
	}()
	return nil
}
