package prefs

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestFyneStore_SetAndObserve(t *testing.T) {
	a := test.NewTempApp(t)
	s := NewFyneStore(a.Preferences())
	p := s.Bool(StopOnScreenOff, true)

	var got []bool
	cancel := p.Observe(func(v bool) { got = append(got, v) })
	defer cancel()

	p.Set(false)
	if a.Preferences().BoolWithFallback(StopOnScreenOff, true) {
		t.Fatalf("value not written to fyne preferences")
	}
	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("emissions = %v, want [true false]", got)
	}
}

func TestFyneStore_ExternalWriteIsObserved(t *testing.T) {
	a := test.NewTempApp(t)
	s := NewFyneStore(a.Preferences())

	changed := make(chan bool, 4)
	cancel := s.Bool(StopOnShake, false).Observe(func(v bool) { changed <- v })
	defer cancel()
	<-changed

	a.Preferences().SetBool(StopOnShake, true)

	select {
	case v := <-changed:
		if !v {
			t.Fatalf("expected true")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("change listener did not fire")
	}
}
