package domain

import (
	"errors"
	"fmt"
)

// ErrSessionTokenNotFound means the metadata document contained no session
// token anywhere; the run cannot proceed to query execution.
var ErrSessionTokenNotFound = errors.New("session token not found in model metadata")

// TransportError covers network-level failures and non-success HTTP statuses
// on any of the backend calls.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError covers responses that arrived but could not be interpreted:
// invalid JSON, missing required fields, or a result document whose shape
// deviates from the one fixed layout this tool understands.
type FormatError struct {
	Op  string
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
