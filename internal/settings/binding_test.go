package settings

import (
	"testing"

	"github.com/oukeidos/mnmlrec/internal/prefs"
)

// queue is a Dispatcher that holds work until run is called, like a UI
// thread that has not got to it yet.
type queue struct {
	fns []func()
}

func (q *queue) dispatch(fn func()) { q.fns = append(q.fns, fn) }

func (q *queue) run() {
	fns := q.fns
	q.fns = nil
	for _, fn := range fns {
		fn()
	}
}

func TestBind_ShowsStoredValue(t *testing.T) {
	store := prefs.NewMemoryStore()
	sw := NewSwitch(false)
	b := Bind(sw, store.Bool(prefs.StopOnScreenOff, true))
	defer b.Close()

	if !sw.Checked() {
		t.Fatalf("toggle should show stored value true")
	}
}

func TestBind_StoreToToggleIsIdempotent(t *testing.T) {
	store := prefs.NewMemoryStore()
	pref := store.Bool(prefs.StopOnShake, false)
	sw := NewSwitch(false)
	b := Bind(sw, pref)
	defer b.Close()

	if sw.Updates() != 0 {
		t.Fatalf("replay equal to displayed state must not update, got %d", sw.Updates())
	}
	pref.Set(true)
	pref.Set(true)
	if !sw.Checked() {
		t.Fatalf("toggle did not follow store")
	}
	if sw.Updates() != 1 {
		t.Fatalf("updates = %d, want 1", sw.Updates())
	}
	pref.Set(false)
	if sw.Checked() || sw.Updates() != 2 {
		t.Fatalf("checked=%v updates=%d, want false/2", sw.Checked(), sw.Updates())
	}
}

func TestBind_UserChangeWritesStore(t *testing.T) {
	for _, v := range []bool{true, false} {
		store := prefs.NewMemoryStore()
		pref := store.Bool(prefs.AlwaysShowControls, !v)
		sw := NewSwitch(!v)
		b := Bind(sw, pref)

		if !sw.Flip(v) {
			t.Fatalf("ungated change to %v rejected", v)
		}
		if pref.Get() != v {
			t.Fatalf("store = %v, want %v", pref.Get(), v)
		}
		if sw.Updates() != 0 {
			t.Fatalf("user change echoed back to toggle %d times", sw.Updates())
		}
		b.Close()
	}
}

func TestBind_GateVetoesEnableOnly(t *testing.T) {
	store := prefs.NewMemoryStore()
	pref := store.Bool(prefs.FloatingControls, false)
	sw := NewSwitch(false)
	rejected := 0
	b := Bind(sw, pref, WithGate(Gate{
		Allow:  func() bool { return false },
		Reject: func() { rejected++ },
	}))
	defer b.Close()

	if sw.Flip(true) {
		t.Fatalf("gated enable should be rejected")
	}
	if sw.Checked() || pref.Get() || rejected != 1 {
		t.Fatalf("checked=%v stored=%v rejected=%d", sw.Checked(), pref.Get(), rejected)
	}

	pref.Set(true)
	if !sw.Flip(false) {
		t.Fatalf("disable must never be gated")
	}
	if pref.Get() || rejected != 1 {
		t.Fatalf("disable should write false without consulting the gate")
	}
}

func TestBind_CloseDropsQueuedUpdates(t *testing.T) {
	store := prefs.NewMemoryStore()
	pref := store.Bool(prefs.StopOnShake, false)
	sw := NewSwitch(false)
	q := &queue{}
	b := Bind(sw, pref, WithDispatcher(q.dispatch))
	q.run()

	pref.Set(true)
	b.Close()
	q.run()
	pref.Set(false)
	pref.Set(true)
	q.run()

	if sw.Checked() || sw.Updates() != 0 {
		t.Fatalf("update reached a closed binding: checked=%v updates=%d", sw.Checked(), sw.Updates())
	}
	if store.Observers(prefs.StopOnShake) != 0 {
		t.Fatalf("subscription leaked after Close")
	}
	pref.Set(false)
	sw.Flip(true)
	if pref.Get() {
		t.Fatalf("closed binding must not write the store")
	}
}
