package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// TransientError marks failures worth retrying on the same transport path:
// rate limiting, 5xx responses and flaky network conditions.
type TransientError struct {
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("transient failure (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transient failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError is not retried on the current path. PathSpecific failures (a
// region block on one mirror or proxy) still allow rotating to the next path;
// request-shape failures abort the whole operation since the request would be
// rejected everywhere.
type FatalError struct {
	Status       int
	PathSpecific bool
	Err          error
}

func (e *FatalError) Error() string {
	kind := "request"
	if e.PathSpecific {
		kind = "path"
	}
	if e.Status > 0 {
		return fmt.Sprintf("fatal %s failure (status %d): %v", kind, e.Status, e.Err)
	}
	return fmt.Sprintf("fatal %s failure: %v", kind, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// PathFailure summarizes why one transport path was abandoned.
type PathFailure struct {
	Path string
	Err  error
}

// ExhaustedError reports that every transport path failed, carrying one
// summary per attempted path for diagnostics.
type ExhaustedError struct {
	Failures []PathFailure
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "all %d transport paths exhausted", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; %s: %v", f.Path, f.Err)
	}
	return b.String()
}

// classify maps a call error plus the last observed HTTP status onto the
// retry taxonomy. Binance answers 429 when rate limited and 418 once the
// limiter escalates to a temporary IP ban; both back off in place. 451 and
// 403 are regional legal blocks tied to the network origin, so only a
// different path can help. Remaining 4xx mean the request itself is wrong.
func classify(err error, status int) error {
	switch {
	case status == http.StatusTooManyRequests || status == http.StatusTeapot:
		return &TransientError{Status: status, Err: err}
	case status >= 500:
		return &TransientError{Status: status, Err: err}
	case status == http.StatusUnavailableForLegalReasons || status == http.StatusForbidden:
		return &FatalError{Status: status, PathSpecific: true, Err: err}
	case status >= 400:
		return &FatalError{Status: status, Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &FatalError{Err: err}
	}

	var ne net.Error
	switch {
	case errors.As(err, &ne) && ne.Timeout(),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return &TransientError{Err: err}
	}

	// Unknown failures (e.g. a proxy mangling the response body) are treated
	// as transient; in-path retries are bounded and exhaustion rotates to the
	// next path anyway.
	return &TransientError{Err: err}
}
