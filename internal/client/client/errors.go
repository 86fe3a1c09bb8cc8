package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("store unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// ErrNotConfigured is returned by components that need a store when the
	// client runs without one.
	ErrNotConfigured = errors.New("store not configured")
)

// StatusError is a non-2xx answer from the store. It unwraps to the
// matching sentinel error, if any.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("store responded %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("store responded %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusUnauthorized, e.Code == http.StatusForbidden:
		return ErrUnauthorized
	case e.Code == http.StatusNotFound:
		return ErrNotFound
	case e.Code >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return nil
	}
}
