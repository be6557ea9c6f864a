package main

import (
	"fyne.io/fyne/v2/widget"
)

// checkToggle adapts a widget.Check to settings.Toggle. widget.Check calls
// OnChanged for programmatic SetChecked too, so those calls are filtered.
type checkToggle struct {
	check        *widget.Check
	onChange     func(bool) bool
	programmatic bool
}

func newCheckToggle(label string) *checkToggle {
	t := &checkToggle{}
	t.check = widget.NewCheck(label, t.changed)
	return t
}

func (t *checkToggle) Checked() bool { return t.check.Checked }

func (t *checkToggle) SetChecked(checked bool) {
	t.programmatic = true
	defer func() { t.programmatic = false }()
	t.check.SetChecked(checked)
}

func (t *checkToggle) OnChange(fn func(bool) bool) { t.onChange = fn }

func (t *checkToggle) changed(checked bool) {
	if t.programmatic || t.onChange == nil {
		return
	}
	if !t.onChange(checked) {
		t.SetChecked(!checked)
	}
}
