package datamall

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failure. The set is closed: every error returned by this
// module and its service packages is an *Error with one of these kinds.
type Kind uint8

const (
	// KindTransport covers connection refused, DNS, TLS, timeouts and
	// cancellation. The request may or may not have reached the server.
	KindTransport Kind = iota + 1
	// KindUpstream is a non-2xx HTTP status from the service.
	KindUpstream
	// KindDecode means a 2xx body did not match the expected shape.
	KindDecode
	// KindResolve means the request could not be built: malformed endpoint
	// components or invalid call parameters.
	KindResolve
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUpstream:
		return "upstream"
	case KindDecode:
		return "decode"
	case KindResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is. They match any *Error of the same kind.
var (
	ErrTransport = &Error{Kind: KindTransport, Message: "transport failure"}
	ErrUpstream  = &Error{Kind: KindUpstream, Message: "upstream api failure"}
	ErrDecode    = &Error{Kind: KindDecode, Message: "response does not match expected shape"}
	ErrResolve   = &Error{Kind: KindResolve, Message: "invalid request"}
)

// Error is the single error type surfaced to callers.
type Error struct {
	Kind     Kind
	Op       string // Route or operation that failed
	Endpoint string // Resolved URL, when known

	// Upstream failures.
	StatusCode int

	// Human-readable message; for upstream failures this is the service's own message.
	Message string

	// Decode failures.
	BodyLen int
	Snippet string

	Err error // Underlying cause
}

func (e *Error) Error() string {
	msg := "datamall"
	if e.Op != "" {
		msg += " " + e.Op
	}
	msg += " [" + e.Kind.String() + "]"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Kind == KindDecode && e.BodyLen > 0 {
		msg += fmt.Sprintf(" (body %d bytes: %q)", e.BodyLen, e.Snippet)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for error comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Timeout reports whether the failure was a deadline or client timeout.
func (e *Error) Timeout() bool {
	if e.Kind != KindTransport {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsTransport checks if an error is a network or transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsUpstream checks if an error is a non-2xx response from the service.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsDecode checks if an error is a deserialization failure.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsResolve checks if an error is an endpoint or parameter failure.
func IsResolve(err error) bool {
	return errors.Is(err, ErrResolve)
}

// IsTimeout checks if an error is a transport timeout.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Timeout()
}

// IsUnauthorized checks if the service rejected the API key.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindUpstream {
		return e.StatusCode
	}
	return 0
}

// ResolveError wraps a parameter or endpoint problem. Service packages use it
// to report invalid call arguments before any request is made.
func ResolveError(op string, err error) error {
	return &Error{Kind: KindResolve, Op: op, Message: "invalid request", Err: err}
}

func transportError(op, endpoint string, err error) error {
	msg := "request failed"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "request timed out"
	} else if errors.Is(err, context.Canceled) {
		msg = "request canceled"
	}
	return &Error{Kind: KindTransport, Op: op, Endpoint: endpoint, Message: msg, Err: err}
}

func upstreamError(op, endpoint string, status int, body []byte) error {
	msg := upstreamMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Kind: KindUpstream, Op: op, Endpoint: endpoint, StatusCode: status, Message: msg}
}

func decodeError(op, endpoint string, body []byte, err error) error {
	return &Error{
		Kind:     KindDecode,
		Op:       op,
		Endpoint: endpoint,
		Message:  "response does not match expected shape",
		BodyLen:  len(body),
		Snippet:  snippet(body, snippetLen),
		Err:      err,
	}
}
