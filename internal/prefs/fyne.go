package prefs

import (
	"sync"

	"fyne.io/fyne/v2"
)

// FyneStore adapts fyne.Preferences, the store the desktop app persists
// its settings in.
type FyneStore struct {
	p   fyne.Preferences
	hub hub

	mu      sync.Mutex
	tracked map[string]bool
}

// NewFyneStore registers a change listener on p; fyne offers no way to
// remove it, so create one store per Preferences.
func NewFyneStore(p fyne.Preferences) *FyneStore {
	s := &FyneStore{p: p, tracked: make(map[string]bool)}
	p.AddChangeListener(s.refresh)
	return s
}

func (s *FyneStore) Bool(key string, fallback bool) Bool {
	s.mu.Lock()
	s.tracked[key] = fallback
	s.mu.Unlock()
	return &boolPref{key: key, fallback: fallback, b: s}
}

func (s *FyneStore) load(key string, fallback bool) bool {
	return s.p.BoolWithFallback(key, fallback)
}

func (s *FyneStore) save(key string, v bool) {
	s.p.SetBool(key, v)
	s.hub.publish(key, v)
}

func (s *FyneStore) observers() *hub { return &s.hub }

// refresh re-reads every handed-out key; fyne reports that something
// changed but not what.
func (s *FyneStore) refresh() {
	s.mu.Lock()
	keys := make(map[string]bool, len(s.tracked))
	for k, fb := range s.tracked {
		keys[k] = fb
	}
	s.mu.Unlock()

	for k, fb := range keys {
		s.hub.publish(k, s.p.BoolWithFallback(k, fb))
	}
}
