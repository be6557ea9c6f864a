package permission

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
	"github.com/oukeidos/mnmlrec/internal/logger"
)

const (
	keyringService = "mnmlrec"
	grantedValue   = "granted"
)

// Seams for tests.
var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// Keyring keeps desktop permission grants in the OS keychain. It stands in
// for the OS permission subsystem on platforms that have none for overlays.
type Keyring struct {
	Name string
}

// NewKeyring returns the grant store for the named permission.
func NewKeyring(name string) *Keyring {
	return &Keyring{Name: name}
}

func (k *Keyring) account() string {
	return k.Name + "-permission"
}

// Granted reports whether the grant is stored. Keychain failures read as
// not granted.
func (k *Keyring) Granted() bool {
	v, err := keyringGet(keyringService, k.account())
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keychain lookup failed", "permission", k.Name, "error", err)
		}
		return false
	}
	return v == grantedValue
}

// Status is Granted with the keychain error surfaced.
func (k *Keyring) Status() (bool, error) {
	v, err := keyringGet(keyringService, k.account())
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Unavailable(fmt.Errorf("read %s grant: %w", k.Name, err))
	}
	return v == grantedValue, nil
}

func (k *Keyring) Grant() error {
	if err := keyringSet(keyringService, k.account(), grantedValue); err != nil {
		return apperrors.Unavailable(fmt.Errorf("store %s grant: %w", k.Name, err))
	}
	logger.Info("Permission granted", "permission", k.Name)
	return nil
}

// Revoke removes the grant. Revoking an absent grant succeeds.
func (k *Keyring) Revoke() error {
	err := keyringDelete(keyringService, k.account())
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return apperrors.Unavailable(fmt.Errorf("remove %s grant: %w", k.Name, err))
	}
	logger.Info("Permission revoked", "permission", k.Name)
	return nil
}
