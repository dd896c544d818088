package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// TransportError means the catalog could not be reached or answered with a non-2xx status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "catalog transport error: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError means the request did not finish within its bound.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return "catalog request timed out: " + e.Err.Error() }
func (e *TimeoutError) Unwrap() error { return e.Err }

// DecodeError means the response body was not a JSON array of exercises.
type DecodeError struct {
	Err  error
	Body []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("catalog decode error: %v body=%s", e.Err, snippet(e.Body, 300))
}
func (e *DecodeError) Unwrap() error { return e.Err }

// HTTPError carries status and body for non-2xx responses.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

// Kind names the error class for logs: "timeout", "decode", "transport" or "unknown".
func Kind(err error) string {
	var (
		te *TimeoutError
		de *DecodeError
		tr *TransportError
	)
	switch {
	case errors.As(err, &te):
		return "timeout"
	case errors.As(err, &de):
		return "decode"
	case errors.As(err, &tr):
		return "transport"
	default:
		return "unknown"
	}
}

// classify wraps a raw request/read error into TimeoutError or TransportError.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &TimeoutError{Err: err}
	}
	return &TransportError{Err: err}
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
