package transport

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"
)

// Blocking runs each exchange to completion on the calling goroutine.
// It introduces no concurrency of its own.
type Blocking struct {
	httpClient *http.Client
	timeout    time.Duration
	closed     atomic.Bool
}

// BlockingOption configures a Blocking transport.
type BlockingOption func(*Blocking)

// WithBlockingClient sets the pooled HTTP client.
func WithBlockingClient(client *http.Client) BlockingOption {
	return func(b *Blocking) {
		b.httpClient = client
	}
}

// WithBlockingTimeout sets the per-request timeout.
func WithBlockingTimeout(d time.Duration) BlockingOption {
	return func(b *Blocking) {
		b.timeout = d
	}
}

// NewBlocking creates a new blocking transport.
func NewBlocking(opts ...BlockingOption) *Blocking {
	b := &Blocking{
		timeout: DefaultPoolConfig().Timeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.httpClient == nil {
		b.httpClient = NewPool(DefaultPoolConfig())
	}
	return b
}

func (b *Blocking) Name() string { return "blocking" }

// RoundTrip sends the request and waits for the full response.
func (b *Blocking) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}
	return exchange(ctx, b.httpClient, b.timeout, req)
}

// Close drops idle connections. Later calls fail with ErrClosed.
func (b *Blocking) Close() error {
	if b.closed.CompareAndSwap(false, true) {
		closeIdle(b.httpClient)
	}
	return nil
}
