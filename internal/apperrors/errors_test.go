package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPublicMessage_UsesSafeMessage(t *testing.T) {
	sentinel := errors.New("keychain: dbus timeout at /org/freedesktop/secrets")
	err := New(KindUnavailable, "keychain locked", sentinel)
	if got := PublicMessage(err); got != "keychain locked" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "keychain locked")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped cause to be retained for internal matching")
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("save floating_controls: %w", Storage(errors.New("disk full")))
	kind, ok := KindOf(err)
	if !ok || kind != KindStorage {
		t.Fatalf("KindOf() = (%q, %v), want (%q, true)", kind, ok, KindStorage)
	}
	if !Is(err, KindStorage) {
		t.Fatalf("expected Is(err, storage)")
	}
	if Is(err, KindPermission) {
		t.Fatalf("storage error reported as permission error")
	}
}

func TestDefaultSafeMessage(t *testing.T) {
	err := Permission(errors.New("exec: no such file"))
	if got := PublicMessage(err); got != "The permission request could not be started." {
		t.Fatalf("PublicMessage() = %q", got)
	}
}

func TestPublicMessage_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if got := PublicMessage(err); got != "plain" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "plain")
	}
}
