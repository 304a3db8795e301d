package api

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind partitions every failure a call can surface. Callers branch on
// the kind, never on status codes or error strings.
type ErrorKind int

const (
	// KindUnauthorized covers 401/403. The client performs no redirect and
	// never clears the session itself; the caller owns that side effect.
	KindUnauthorized ErrorKind = iota
	// KindNetwork means no response was received. Callers degrade gracefully
	// and keep prior UI state.
	KindNetwork
	// KindData covers any other non-2xx response and malformed response
	// shapes caught at the decode boundary.
	KindData
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNetwork:
		return "network error"
	default:
		return "data fetch error"
	}
}

// Error is the uniform failure surfaced by the gateway client.
type Error struct {
	Kind   ErrorKind
	Status int    // 0 when no response was received
	Detail string // server-provided human-readable reason, when present
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Detail)
	}
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (%d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("api: %s", e.Kind)
}

func kindIs(err error, kind ErrorKind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

func IsUnauthorized(err error) bool { return kindIs(err, KindUnauthorized) }
func IsNetwork(err error) bool      { return kindIs(err, KindNetwork) }
func IsData(err error) bool         { return kindIs(err, KindData) }

// Detail extracts the server-provided reason, if the error carries one.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
