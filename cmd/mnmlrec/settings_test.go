package main

import (
	"context"
	"strings"
	"testing"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
	"github.com/oukeidos/mnmlrec/internal/permission"
)

func TestSettingsList_ShowsDefaults(t *testing.T) {
	path := testEnv(t)
	out, err := executeCommand(t, "", "settings", "list", "--prefs", path)
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}
	for _, want := range []string{"stop_on_screen_off", "always_show_controls", "stop_on_shake", "floating_controls", "needs overlay permission"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list output missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "stop_on_screen_off ") && !strings.Contains(line, " on ") {
			t.Fatalf("stop_on_screen_off should default on: %q", line)
		}
	}
}

func TestSettingsSet_Plain(t *testing.T) {
	path := testEnv(t)
	out, err := executeCommand(t, "", "settings", "set", "stop_on_shake", "on", "--prefs", path)
	if err != nil {
		t.Fatalf("set failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "stop_on_shake = on") {
		t.Fatalf("unexpected output: %s", out)
	}

	out, err = executeCommand(t, "", "settings", "get", "stop_on_shake", "--prefs", path)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if strings.TrimSpace(out) != "on" {
		t.Fatalf("get = %q, want on", out)
	}
}

func TestSettingsSet_UnknownSettingAndValue(t *testing.T) {
	path := testEnv(t)
	_, err := executeCommand(t, "", "settings", "set", "stop_on_sneeze", "on", "--prefs", path)
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	_, err = executeCommand(t, "", "settings", "set", "stop_on_shake", "sometimes", "--prefs", path)
	if !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSettingsSet_GatedDeclinedExplanation(t *testing.T) {
	path := testEnv(t)
	out, err := executeCommand(t, "n\n", "settings", "set", "floating_controls", "on", "--prefs", path)
	if !apperrors.Is(err, apperrors.KindPermission) {
		t.Fatalf("expected permission error, got %v\n%s", err, out)
	}
	if !strings.Contains(out, "display over other apps") {
		t.Fatalf("explanation not shown:\n%s", out)
	}
	if strings.Contains(out, "Allow ") {
		t.Fatalf("system screen shown after declined explanation:\n%s", out)
	}

	out, _ = executeCommand(t, "", "settings", "get", "floating_controls", "--prefs", path)
	if strings.TrimSpace(out) != "off" {
		t.Fatalf("floating_controls = %q, want off", out)
	}
}

func TestSettingsSet_GatedDeniedAtSystemScreen(t *testing.T) {
	path := testEnv(t)
	_, err := executeCommand(t, "y\nn\n", "settings", "set", "floating_controls", "on", "--prefs", path)
	if !apperrors.Is(err, apperrors.KindPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if permission.NewKeyring(permission.Overlay).Granted() {
		t.Fatalf("permission must not be granted")
	}
}

func TestSettingsSet_GatedGrantedThroughPrompts(t *testing.T) {
	path := testEnv(t)
	out, err := executeCommand(t, "y\ny\n", "settings", "set", "floating_controls", "on", "--prefs", path)
	if err != nil {
		t.Fatalf("set failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "floating_controls = on") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !permission.NewKeyring(permission.Overlay).Granted() {
		t.Fatalf("grant should be stored in the keychain")
	}

	// Already granted: no prompt needed.
	out, err = executeCommand(t, "", "settings", "set", "floating_controls", "off", "--prefs", path)
	if err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	out, err = executeCommand(t, "", "settings", "set", "floating_controls", "on", "--prefs", path)
	if err != nil {
		t.Fatalf("re-enable with grant failed: %v\n%s", err, out)
	}
	if strings.Contains(out, "Continue?") {
		t.Fatalf("explanation shown although permission is held:\n%s", out)
	}
}

func TestSettingsSet_AssumeYes(t *testing.T) {
	path := testEnv(t)
	out, err := executeCommand(t, "", "settings", "set", "floating_controls", "on", "-y", "--prefs", path)
	if err != nil {
		t.Fatalf("set -y failed: %v\n%s", err, out)
	}
}

func TestSettingsReset(t *testing.T) {
	path := testEnv(t)
	if _, err := executeCommand(t, "", "settings", "set", "stop_on_screen_off", "off", "--prefs", path); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := executeCommand(t, "", "settings", "reset", "--prefs", path); err != nil {
		t.Fatalf("reset: %v", err)
	}
	out, _ := executeCommand(t, "", "settings", "get", "stop_on_screen_off", "--prefs", path)
	if strings.TrimSpace(out) != "on" {
		t.Fatalf("stop_on_screen_off = %q after reset, want on", out)
	}
}

func TestSettingsWatch_PrintsCurrentValuesAndStops(t *testing.T) {
	path := testEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newRootCmd()
	var buf strings.Builder
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"settings", "watch", "--prefs", path})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !strings.Contains(buf.String(), "stop_on_screen_off = on") {
		t.Fatalf("watch should print current values:\n%s", buf.String())
	}
}
