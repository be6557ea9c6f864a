package settings

import (
	"sync"
	"sync/atomic"

	"github.com/oukeidos/mnmlrec/internal/logger"
	"github.com/oukeidos/mnmlrec/internal/prefs"
)

// Dispatcher runs fn on the UI thread.
type Dispatcher func(fn func())

// Inline runs fn on the calling goroutine.
func Inline(fn func()) { fn() }

// Gate guards enabling a setting. Disabling is never gated.
type Gate struct {
	// Allow reports whether the setting may be enabled now.
	Allow func() bool
	// Reject runs when Allow said no, before the control reverts.
	Reject func()
}

type Option func(*Binding)

// WithDispatcher delivers store updates to the toggle through d.
func WithDispatcher(d Dispatcher) Option {
	return func(b *Binding) {
		if d != nil {
			b.dispatch = d
		}
	}
}

// WithGate vetoes user enables that g does not allow.
func WithGate(g Gate) Option {
	return func(b *Binding) {
		b.gate = &g
	}
}

// Binding keeps a Toggle and a prefs.Bool in sync in both directions.
type Binding struct {
	toggle   Toggle
	pref     prefs.Bool
	gate     *Gate
	dispatch Dispatcher

	closed    atomic.Bool
	closeOnce sync.Once
	cancel    func()
}

// Bind wires t to p. The toggle immediately shows the stored value.
func Bind(t Toggle, p prefs.Bool, opts ...Option) *Binding {
	b := &Binding{toggle: t, pref: p, dispatch: Inline}
	for _, opt := range opts {
		opt(b)
	}
	t.OnChange(b.userChanged)
	b.cancel = p.Observe(b.storeChanged)
	return b
}

func (b *Binding) Key() string { return b.pref.Key() }

func (b *Binding) storeChanged(v bool) {
	if b.closed.Load() {
		return
	}
	b.dispatch(func() {
		// Checked again on the UI thread: an update queued before Close
		// must not reach a destroyed control.
		if b.closed.Load() {
			return
		}
		if b.toggle.Checked() == v {
			return
		}
		b.toggle.SetChecked(v)
	})
}

func (b *Binding) userChanged(checked bool) bool {
	if b.closed.Load() {
		return false
	}
	if checked && b.gate != nil && b.gate.Allow != nil && !b.gate.Allow() {
		logger.Info("Setting change held for permission", "setting", b.pref.Key())
		if b.gate.Reject != nil {
			b.gate.Reject()
		}
		return false
	}
	logger.Debug("Setting changed", "setting", b.pref.Key(), "value", checked)
	b.pref.Set(checked)
	return true
}

// Close releases the store subscription and detaches from the toggle.
func (b *Binding) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		if b.cancel != nil {
			b.cancel()
		}
		b.toggle.OnChange(nil)
	})
}
