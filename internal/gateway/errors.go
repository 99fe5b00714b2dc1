package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrTransient marks a failed read: network failure, a non-success
	// response, or an unreadable body. Callers decide retry policy; the
	// gateway itself never retries.
	ErrTransient = errors.New("engine unavailable")

	// ErrNotFound is returned when a transaction detail lookup does not
	// resolve.
	ErrNotFound = errors.New("transaction not found")
)

// UploadError is a rejected reconciliation submission. Message holds the
// server's response body verbatim; the gateway does not parse or
// categorize it further.
type UploadError struct {
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	return e.Message
}

// transientErr wraps an underlying failure so that errors.Is(err,
// ErrTransient) holds while the cause stays visible in logs.
func transientErr(op string, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrTransient, cause)
}

func transientStatus(op string, status int) error {
	return fmt.Errorf("%s: %w: unexpected status %d", op, ErrTransient, status)
}
