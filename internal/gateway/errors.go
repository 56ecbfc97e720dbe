package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure. Every expected failure category is
// returned as a tagged *Error; the gateway never panics for them.
type Kind string

const (
	// KindNetwork covers no-response failures: connection refused, DNS,
	// and caller timeouts. A timeout is indistinguishable from a
	// connection failure by contract.
	KindNetwork Kind = "network"
	// KindAuth covers unauthenticated and unauthorized responses.
	KindAuth Kind = "auth"
	// KindValidation covers mutation payloads the remote rejected.
	KindValidation Kind = "validation"
	// KindNotFound covers mutations against a missing record id.
	KindNotFound Kind = "not-found"
	// KindServer covers 5xx responses and malformed response bodies.
	KindServer Kind = "server"
	// KindNotImplemented marks operations the backend does not wire for
	// a collection. It is a first-class result, not a UI shortcut.
	KindNotImplemented Kind = "not-implemented"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Error is a tagged gateway failure.
type Error struct {
	Kind    Kind
	Message string
	Status  int // HTTP status, 0 when no response was received
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("gateway: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("gateway: %s: %s", e.Kind, e.Message)
}

// KindOf returns the failure kind of an error, or KindServer for
// anything that is not a tagged gateway error. Unexpected errors caught
// at the controller boundary are displayed as generic server errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindServer
}

// IsKind reports whether the error is a gateway error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}

// classifyStatus maps an HTTP status code to a failure kind.
func classifyStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status == 400 || status == 422:
		return KindValidation
	case status == 501:
		return KindNotImplemented
	default:
		return KindServer
	}
}
