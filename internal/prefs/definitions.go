package prefs

import (
	"strconv"
	"strings"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
)

// Setting keys of the controls screen.
const (
	StopOnScreenOff    = "stop_on_screen_off"
	AlwaysShowControls = "always_show_controls"
	StopOnShake        = "stop_on_shake"
	FloatingControls   = "floating_controls"
)

// Definition describes one toggle on the controls screen.
type Definition struct {
	Key     string
	Title   string
	Summary string
	Default bool
	// Gated settings may only be enabled while the overlay permission is held.
	Gated bool
}

var definitions = []Definition{
	{
		Key:     StopOnScreenOff,
		Title:   "Stop on screen off",
		Summary: "Stop recording when the screen turns off.",
		Default: true,
	},
	{
		Key:     AlwaysShowControls,
		Title:   "Always show controls",
		Summary: "Keep the recording controls visible even when not recording.",
		Default: false,
	},
	{
		Key:     StopOnShake,
		Title:   "Stop on shake",
		Summary: "Stop recording when the device is shaken.",
		Default: false,
	},
	{
		Key:     FloatingControls,
		Title:   "Floating controls",
		Summary: "Show recording controls on top of other apps.",
		Default: false,
		Gated:   true,
	},
}

// Definitions returns the controls screen in display order.
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// Lookup finds a definition by key.
func Lookup(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// ParseValue accepts the boolean spellings the CLI allows.
func ParseValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "yes", "1", "enable", "enabled":
		return true, nil
	case "false", "off", "no", "0", "disable", "disabled":
		return false, nil
	default:
		return false, apperrors.Validation("value must be true or false, got " + strconv.Quote(s))
	}
}
