package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindStorage     Kind = "storage"
	KindPermission  Kind = "permission"
	KindUnavailable Kind = "unavailable"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return "Invalid value."
	case KindNotFound:
		return "No such setting."
	case KindStorage:
		return "Settings could not be saved. Please try again."
	case KindPermission:
		return "The permission request could not be started."
	case KindUnavailable:
		return "The system keychain is not available."
	default:
		return "Request failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Validation(msg string) error {
	return New(KindValidation, msg, nil)
}

func NotFound(msg string) error {
	return New(KindNotFound, msg, nil)
}

func Storage(err error) error {
	return New(KindStorage, "", err)
}

func Permission(err error) error {
	return New(KindPermission, "", err)
}

func Unavailable(err error) error {
	return New(KindUnavailable, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
