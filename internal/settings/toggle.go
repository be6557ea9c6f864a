package settings

import "sync"

// Toggle is a UI switch bound to a setting.
type Toggle interface {
	Checked() bool
	// SetChecked updates the displayed state without reporting a user change.
	SetChecked(checked bool)
	// OnChange registers the user-change handler. Returning false rejects the
	// change and the control reverts to its previous state. A nil handler
	// detaches.
	OnChange(fn func(checked bool) bool)
}

// Switch is a Toggle without a widget behind it, used by the CLI and in tests.
type Switch struct {
	mu       sync.Mutex
	checked  bool
	updates  int
	onChange func(bool) bool
}

func NewSwitch(checked bool) *Switch {
	return &Switch{checked: checked}
}

func (s *Switch) Checked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checked
}

func (s *Switch) SetChecked(checked bool) {
	s.mu.Lock()
	s.checked = checked
	s.updates++
	s.mu.Unlock()
}

func (s *Switch) OnChange(fn func(bool) bool) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Flip simulates the user switching to checked and reports whether the
// change was accepted.
func (s *Switch) Flip(checked bool) bool {
	s.mu.Lock()
	prev := s.checked
	if prev == checked {
		s.mu.Unlock()
		return true
	}
	s.checked = checked
	fn := s.onChange
	s.mu.Unlock()

	if fn == nil || fn(checked) {
		return true
	}
	s.mu.Lock()
	s.checked = prev
	s.mu.Unlock()
	return false
}

// Updates counts programmatic SetChecked calls.
func (s *Switch) Updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}
