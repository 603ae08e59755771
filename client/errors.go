package client

import (
	"errors"
	"fmt"
)

var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// StatusError reports a non-success response the caller did not expect.
// Message holds the server's {"error"} text when the body carried one.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("failed to %s: HTTP status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("failed to %s: HTTP status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
