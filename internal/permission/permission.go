// Package permission models a runtime OS permission and the asynchronous
// flow that asks the user to grant it.
package permission

import (
	"github.com/google/uuid"
)

// Overlay is the "draw over other apps" permission floating controls need.
const Overlay = "overlay"

// Checker reports whether a permission is currently held. Implementations
// must be synchronous and free of side effects.
type Checker interface {
	Granted() bool
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func() bool

func (f CheckerFunc) Granted() bool { return f() }

// Token correlates a permission request with its eventual Result. The zero
// Token matches nothing.
type Token struct {
	id uuid.UUID
}

// NewToken returns a fresh token, time-ordered where the platform allows.
func NewToken() Token {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Token{id: id}
}

func (t Token) IsZero() bool { return t.id == uuid.Nil }

func (t Token) String() string {
	if t.IsZero() {
		return ""
	}
	return t.id.String()
}

// ResultCode is what the external flow reported. It is advisory: the user
// may have granted or revoked the permission elsewhere, so consumers
// re-check the Checker.
type ResultCode int

const (
	ResultCanceled ResultCode = iota
	ResultOK
)

func (c ResultCode) String() string {
	switch c {
	case ResultOK:
		return "ok"
	case ResultCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Request asks the platform to show the permission screen for AppID.
type Request struct {
	AppID string
	Token Token
}

// Result is delivered when the permission screen returns.
type Result struct {
	Token Token
	Code  ResultCode
}

// Requester starts the external permission flow. It must not block on the
// user; the outcome is delivered later as a Result carrying req.Token.
type Requester interface {
	Request(req Request) error
}

// RequesterFunc adapts a function to Requester.
type RequesterFunc func(req Request) error

func (f RequesterFunc) Request(req Request) error { return f(req) }

// OverlayRationale explains the overlay permission before it is requested.
const OverlayRationale = "Floating controls are drawn on top of other apps. " +
	"To show them, the recorder needs permission to display over other apps."
