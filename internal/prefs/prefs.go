// Package prefs provides persisted boolean settings that can be observed.
//
// Every store replays the current value to a new observer and then emits
// each change. Emissions may arrive on any goroutine; callers that touch UI
// state must hop to their UI thread themselves.
package prefs

import (
	"sync"
	"sync/atomic"
)

// Bool is a persisted boolean setting.
type Bool interface {
	Key() string
	Get() bool
	// Set persists v. Persistence failures are logged by the store and the
	// in-memory value is kept.
	Set(v bool)
	// Observe calls fn with the current value, then with every change until
	// cancel is called. cancel is idempotent.
	Observe(fn func(bool)) (cancel func())
}

// Store hands out Bool settings by key.
type Store interface {
	Bool(key string, fallback bool) Bool
}

type backend interface {
	load(key string, fallback bool) bool
	save(key string, v bool)
	observers() *hub
}

type boolPref struct {
	key      string
	fallback bool
	b        backend
}

func (p *boolPref) Key() string { return p.key }

func (p *boolPref) Get() bool { return p.b.load(p.key, p.fallback) }

func (p *boolPref) Set(v bool) { p.b.save(p.key, v) }

func (p *boolPref) Observe(fn func(bool)) func() {
	return p.b.observers().observe(p.key, p.Get(), fn)
}

type observer struct {
	mu     sync.Mutex
	fn     func(bool)
	active atomic.Bool
}

func (o *observer) deliver(v bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active.Load() {
		o.fn(v)
	}
}

// hub fans out per-key changes and drops values equal to the last one
// published for that key.
type hub struct {
	mu        sync.Mutex
	last      map[string]bool
	observers map[string][]*observer
}

func (h *hub) observe(key string, current bool, fn func(bool)) func() {
	o := &observer{fn: fn}
	o.active.Store(true)

	h.mu.Lock()
	if h.last == nil {
		h.last = make(map[string]bool)
		h.observers = make(map[string][]*observer)
	}
	v, known := h.last[key]
	if !known {
		v = current
		h.last[key] = current
	}
	h.observers[key] = append(h.observers[key], o)
	// Hold the observer until the replay is delivered so a concurrent
	// publish cannot overtake it.
	o.mu.Lock()
	h.mu.Unlock()

	if o.active.Load() {
		o.fn(v)
	}
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.active.Store(false)
			h.remove(key, o)
		})
	}
}

func (h *hub) remove(key string, o *observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.observers[key]
	for i, cur := range list {
		if cur == o {
			h.observers[key] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(h.observers[key]) == 0 {
		delete(h.observers, key)
	}
}

// publish records v for key and notifies observers when it differs from the
// previously published value.
func (h *hub) publish(key string, v bool) {
	h.mu.Lock()
	if h.last == nil {
		h.last = make(map[string]bool)
		h.observers = make(map[string][]*observer)
	}
	if prev, known := h.last[key]; known && prev == v {
		h.mu.Unlock()
		return
	}
	h.last[key] = v
	targets := append([]*observer(nil), h.observers[key]...)
	h.mu.Unlock()

	for _, o := range targets {
		o.deliver(v)
	}
}

func (h *hub) count(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers[key])
}
