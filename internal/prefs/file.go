package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
	"github.com/oukeidos/mnmlrec/internal/files"
	"github.com/oukeidos/mnmlrec/internal/logger"
)

// FileStore reads and writes the JSON document fyne keeps its preferences
// in, so the CLI and the desktop app share settings.
type FileStore struct {
	path string
	hub  hub

	mu       sync.Mutex
	values   map[string]any
	tracked  map[string]bool
	lastErr  error
	watching bool
}

// DefaultPath returns the preferences file fyne uses for appID.
func DefaultPath(appID string) (string, error) {
	if appID == "" {
		return "", apperrors.Validation("app id is required")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "fyne", appID, "preferences.json"), nil
}

// OpenFileStore loads path. A missing file is an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    filepath.Clean(path),
		values:  make(map[string]any),
		tracked: make(map[string]bool),
	}
	values, err := readDocument(s.path)
	if err != nil {
		return nil, err
	}
	s.values = values
	return s, nil
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("read %s: %w", path, err))
	}
	values := make(map[string]any)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, apperrors.New(apperrors.KindStorage, "Settings file is corrupted.", fmt.Errorf("parse %s: %w", path, err))
	}
	return values, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Bool(key string, fallback bool) Bool {
	s.mu.Lock()
	s.tracked[key] = fallback
	s.mu.Unlock()
	return &boolPref{key: key, fallback: fallback, b: s}
}

func (s *FileStore) load(key string, fallback bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return fallback
}

func (s *FileStore) save(key string, v bool) {
	s.mu.Lock()
	s.values[key] = v
	data, err := json.Marshal(s.values)
	if err == nil {
		err = files.AtomicWrite(s.path, data, 0600)
	}
	if err != nil {
		s.lastErr = apperrors.Storage(err)
		logger.Warn("Failed to persist setting", "setting", key, "path", s.path, "error", err)
	} else {
		s.lastErr = nil
	}
	s.mu.Unlock()
	s.hub.publish(key, v)
}

func (s *FileStore) observers() *hub { return &s.hub }

// LastError reports the failure of the most recent write, if any.
func (s *FileStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Reload re-reads the file and emits every tracked key whose value changed.
func (s *FileStore) Reload() error {
	values, err := readDocument(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values = values
	current := make(map[string]bool, len(s.tracked))
	for k, fb := range s.tracked {
		if v, ok := values[k].(bool); ok {
			current[k] = v
		} else {
			current[k] = fb
		}
	}
	s.mu.Unlock()

	for k, v := range current {
		s.hub.publish(k, v)
	}
	return nil
}

// Watch reloads the store whenever the file changes on disk, until ctx is
// done. Emissions happen on the watcher goroutine. Watch returns once the
// watcher is installed.
func (s *FileStore) Watch(ctx context.Context) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return nil
	}
	s.watching = true
	s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return apperrors.Storage(fmt.Errorf("create %s: %w", dir, err))
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Storage(fmt.Errorf("start watcher: %w", err))
	}
	// Watch the directory: atomic replacement swaps the file's inode.
	if err := w.Add(dir); err != nil {
		w.Close()
		return apperrors.Storage(fmt.Errorf("watch %s: %w", dir, err))
	}

	go s.watchLoop(ctx, w)
	return nil
}

func (s *FileStore) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	defer func() {
		w.Close()
		s.mu.Lock()
		s.watching = false
		s.mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				logger.Warn("Failed to reload settings", "path", s.path, "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("Settings watcher error", "path", s.path, "error", err)
		}
	}
}
