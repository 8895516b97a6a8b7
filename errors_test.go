package datamall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestError_IsMatchesKind(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{transportError("/BusStops", "", context.Canceled), ErrTransport},
		{upstreamError("/BusStops", "", 500, nil), ErrUpstream},
		{decodeError("/BusStops", "", []byte("{"), errors.New("eof")), ErrDecode},
		{ResolveError("/BusStops", errors.New("bad")), ErrResolve},
	}
	sentinels := []error{ErrTransport, ErrUpstream, ErrDecode, ErrResolve}

	for _, tc := range cases {
		for _, s := range sentinels {
			got := errors.Is(tc.err, s)
			if got != (s == tc.want) {
				t.Fatalf("errors.Is(%v, %v) = %v", tc.err, s, got)
			}
		}
	}
}

func TestError_WrappedStillClassified(t *testing.T) {
	base := upstreamError("/TrainServiceAlerts", "", http.StatusForbidden, []byte(`{"fault":{"faultstring":"denied"}}`))
	wrapped := fmt.Errorf("refresh alerts: %w", base)

	if KindOf(wrapped) != KindUpstream {
		t.Fatalf("expected upstream kind, got %v", KindOf(wrapped))
	}
	if !IsUnauthorized(wrapped) {
		t.Fatalf("expected unauthorized")
	}
	if StatusCode(wrapped) != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", StatusCode(wrapped))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatalf("expected zero kind for foreign error")
	}
}

func TestError_Message(t *testing.T) {
	err := upstreamError("/BusStops", "https://x/BusStops", 401, []byte(`{"fault":{"faultstring":"Invalid ApiKey for given resource"}}`))
	want := "datamall /BusStops [upstream] status 401: Invalid ApiKey for given resource"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	derr := decodeError("/BusStops", "", []byte(`{"value": 1}`), errors.New("cannot unmarshal"))
	if !strings.Contains(derr.Error(), "body 12 bytes") || !strings.Contains(derr.Error(), "cannot unmarshal") {
		t.Fatalf("unexpected decode message %q", derr.Error())
	}
}

func TestTransportError_Messages(t *testing.T) {
	cases := map[error]string{
		context.DeadlineExceeded:         "request timed out",
		context.Canceled:                 "request canceled",
		errors.New("connection refused"): "request failed",
	}
	for cause, want := range cases {
		var e *Error
		if !errors.As(transportError("op", "", cause), &e) {
			t.Fatalf("expected *Error")
		}
		if e.Message != want {
			t.Fatalf("cause %v: expected %q, got %q", cause, want, e.Message)
		}
		if !errors.Is(e, cause) {
			t.Fatalf("expected cause %v to be unwrapped", cause)
		}
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(transportError("op", "", fmt.Errorf("http request: %w", context.DeadlineExceeded))) {
		t.Fatalf("expected deadline to be a timeout")
	}
	if IsTimeout(transportError("op", "", context.Canceled)) {
		t.Fatalf("expected cancel not to be a timeout")
	}
	if IsTimeout(upstreamError("op", "", http.StatusGatewayTimeout, nil)) {
		t.Fatalf("expected upstream 504 not to be a transport timeout")
	}
}

func TestKind_String(t *testing.T) {
	for k, want := range map[Kind]string{
		KindTransport: "transport",
		KindUpstream:  "upstream",
		KindDecode:    "decode",
		KindResolve:   "resolve",
		Kind(0):       "unknown",
	} {
		if k.String() != want {
			t.Fatalf("expected %q, got %q", want, k.String())
		}
	}
}
