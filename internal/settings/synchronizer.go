// Package settings keeps the recording controls screen consistent with the
// stored settings, holding back enables that need a permission until the
// user has granted it.
//
// Everything except Store emissions is expected on the UI thread; the
// Dispatcher is how store emissions get there.
package settings

import (
	"fmt"
	"strings"

	"github.com/oukeidos/mnmlrec/internal/apperrors"
	"github.com/oukeidos/mnmlrec/internal/logger"
	"github.com/oukeidos/mnmlrec/internal/permission"
	"github.com/oukeidos/mnmlrec/internal/prefs"
)

// GateState is where the permission flow for gated settings stands.
type GateState int

const (
	Synced GateState = iota
	AwaitingPermission
	PendingResult
)

func (s GateState) String() string {
	switch s {
	case Synced:
		return "synced"
	case AwaitingPermission:
		return "awaiting_permission"
	case PendingResult:
		return "pending_result"
	default:
		return "unknown"
	}
}

// Explainer shows why a permission is needed. done(true) means the user
// wants to continue; a dismissal may call done(false) or nothing at all.
type Explainer interface {
	Explain(done func(confirmed bool))
}

// ExplainerFunc adapts a function to Explainer.
type ExplainerFunc func(done func(confirmed bool))

func (f ExplainerFunc) Explain(done func(bool)) { f(done) }

// Deps are the collaborators of a Synchronizer.
type Deps struct {
	Store     prefs.Store
	Checker   permission.Checker
	Requester permission.Requester
	Explainer Explainer
	// AppID identifies the application to the permission screen.
	AppID string
	// Dispatch delivers store updates on the UI thread. Defaults to Inline.
	Dispatch Dispatcher
}

// Synchronizer binds the controls screen toggles to their settings.
type Synchronizer struct {
	deps     Deps
	bindings []*Binding
	closed   bool

	state       GateState
	pending     permission.Token
	pendingPref prefs.Bool
}

func NewSynchronizer(deps Deps) (*Synchronizer, error) {
	var missing []string
	if deps.Store == nil {
		missing = append(missing, "store")
	}
	if deps.Checker == nil {
		missing = append(missing, "permission checker")
	}
	if deps.Requester == nil {
		missing = append(missing, "permission requester")
	}
	if deps.Explainer == nil {
		missing = append(missing, "explainer")
	}
	if strings.TrimSpace(deps.AppID) == "" {
		missing = append(missing, "app id")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("settings screen is missing " + strings.Join(missing, ", "))
	}
	if deps.Dispatch == nil {
		deps.Dispatch = Inline
	}
	return &Synchronizer{deps: deps}, nil
}

// Attach binds one toggle per prefs definition. lookup resolves a setting
// key to its control; if any control is missing nothing is bound.
func (s *Synchronizer) Attach(lookup func(key string) (Toggle, bool)) error {
	if s.closed {
		return apperrors.Validation("settings screen is closed")
	}
	if len(s.bindings) > 0 {
		return apperrors.Validation("settings screen is already attached")
	}

	defs := prefs.Definitions()
	toggles := make([]Toggle, len(defs))
	for i, def := range defs {
		t, ok := lookup(def.Key)
		if !ok || t == nil {
			return apperrors.Validation(fmt.Sprintf("no control for setting %q", def.Key))
		}
		toggles[i] = t
	}

	for i, def := range defs {
		pref := s.deps.Store.Bool(def.Key, def.Default)
		opts := []Option{WithDispatcher(s.deps.Dispatch)}
		if def.Gated {
			opts = append(opts, WithGate(Gate{
				Allow:  s.permissionGranted,
				Reject: func() { s.explain(pref) },
			}))
		}
		s.bindings = append(s.bindings, Bind(toggles[i], pref, opts...))
	}
	logger.Debug("Settings screen attached", "bindings", len(s.bindings))
	return nil
}

// State reports the permission flow state.
func (s *Synchronizer) State() GateState { return s.state }

// Pending returns the token of the outstanding permission request, if any.
func (s *Synchronizer) Pending() permission.Token { return s.pending }

func (s *Synchronizer) permissionGranted() bool {
	if !s.deps.Checker.Granted() {
		return false
	}
	s.reset()
	return true
}

func (s *Synchronizer) explain(pref prefs.Bool) {
	s.state = AwaitingPermission
	s.deps.Explainer.Explain(func(confirmed bool) {
		s.explained(pref, confirmed)
	})
}

func (s *Synchronizer) explained(pref prefs.Bool, confirmed bool) {
	if s.closed {
		return
	}
	if !confirmed {
		if s.state == AwaitingPermission {
			s.reset()
		}
		logger.Debug("Permission explanation dismissed", "setting", pref.Key())
		return
	}

	token := permission.NewToken()
	s.state = PendingResult
	s.pending = token
	s.pendingPref = pref

	logger.Info("Requesting permission", "setting", pref.Key(), "token", token.String())
	if err := s.deps.Requester.Request(permission.Request{AppID: s.deps.AppID, Token: token}); err != nil {
		logger.Warn("Permission request failed to start", "setting", pref.Key(), "error", apperrors.Permission(err))
		s.reset()
	}
}

// HandlePermissionResult completes a permission request. Results for other
// tokens are ignored. res.Code is informational; the Checker decides.
func (s *Synchronizer) HandlePermissionResult(res permission.Result) {
	if s.closed {
		return
	}
	if s.state != PendingResult || res.Token.IsZero() || res.Token != s.pending {
		logger.Debug("Ignoring unmatched permission result", "token", res.Token.String(), "code", res.Code.String())
		return
	}
	pref := s.pendingPref
	s.reset()

	if !s.deps.Checker.Granted() {
		logger.Info("Permission still denied", "setting", pref.Key(), "code", res.Code.String())
		return
	}
	logger.Info("Permission granted, enabling setting", "setting", pref.Key())
	pref.Set(true)
}

func (s *Synchronizer) reset() {
	s.state = Synced
	s.pending = permission.Token{}
	s.pendingPref = nil
}

// Close releases every binding. Later store updates and permission results
// are ignored.
func (s *Synchronizer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, b := range s.bindings {
		b.Close()
	}
	s.bindings = nil
	s.reset()
	logger.Debug("Settings screen closed")
}
