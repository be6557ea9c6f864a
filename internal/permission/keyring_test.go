package permission

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
)

func TestKeyring_GrantRevoke(t *testing.T) {
	keyring.MockInit()
	k := NewKeyring(Overlay)

	if k.Granted() {
		t.Fatalf("expected no grant initially")
	}
	if err := k.Grant(); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if !k.Granted() {
		t.Fatalf("expected grant")
	}
	ok, err := k.Status()
	if err != nil || !ok {
		t.Fatalf("Status() = (%v, %v)", ok, err)
	}
	if err := k.Revoke(); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if k.Granted() {
		t.Fatalf("expected grant removed")
	}
	if err := k.Revoke(); err != nil {
		t.Fatalf("second Revoke should succeed, got %v", err)
	}
}

func TestKeyring_UnavailableKeychain(t *testing.T) {
	prevGet, prevSet := keyringGet, keyringSet
	defer func() { keyringGet, keyringSet = prevGet, prevSet }()

	boom := errors.New("dbus: no secret service")
	keyringGet = func(string, string) (string, error) { return "", boom }
	keyringSet = func(string, string, string) error { return boom }

	k := NewKeyring(Overlay)
	if k.Granted() {
		t.Fatalf("keychain failure must read as not granted")
	}
	if _, err := k.Status(); !apperrors.Is(err, apperrors.KindUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("Status err = %v", err)
	}
	if err := k.Grant(); !apperrors.Is(err, apperrors.KindUnavailable) {
		t.Fatalf("Grant err = %v", err)
	}
}
