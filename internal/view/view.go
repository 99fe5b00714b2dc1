// Package view holds the per-page state machines that sit between HTTP
// handlers and the reconciliation engine gateway. Each page owns its own
// controller; there is no shared store across pages.
package view

import (
	"errors"

	"reconboard/internal/gateway"
)

// State is the lifecycle of one data slice on a page.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// ErrUploadInProgress is returned when an upload is requested while a
// previous one has not finished. Uploads are serialized one at a time.
var ErrUploadInProgress = errors.New("an upload is already in progress")

const engineUnavailableMsg = "The reconciliation engine is unavailable. Please try again."

// fetchMessage converts a gateway read failure into the message shown on
// the page.
func fetchMessage(err error) string {
	if errors.Is(err, gateway.ErrTransient) {
		return engineUnavailableMsg
	}
	return err.Error()
}

// slot is one data slice and the sequence token guarding it. Every fetch
// takes a token from begin; a result is applied only while its token is
// still current, so a superseded request can never overwrite a newer one.
// All methods must be called with the owning controller's mutex held.
type slot[T any] struct {
	state  State
	seq    uint64
	data   T
	errMsg string
}

func (s *slot[T]) begin() uint64 {
	s.seq++
	s.state = StateLoading
	return s.seq
}

func (s *slot[T]) succeed(token uint64, data T) {
	if token != s.seq {
		return
	}
	s.data = data
	s.errMsg = ""
	s.state = StateReady
}

// fail replaces shown content with the failure state. There is no
// stale-data fallback.
func (s *slot[T]) fail(token uint64, state State, msg string) {
	if token != s.seq {
		return
	}
	var zero T
	s.data = zero
	s.errMsg = msg
	s.state = state
}
