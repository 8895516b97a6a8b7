package transport

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// DefaultMaxInFlight is the default number of concurrent exchanges an Async
// transport runs.
const DefaultMaxInFlight = 16

// Async hands exchanges to a bounded set of goroutines. Callers either wait
// for the result through RoundTrip or keep working and collect it later
// through the Pending returned by Submit.
type Async struct {
	httpClient  *http.Client
	timeout     time.Duration
	maxInFlight int

	slots chan struct{}

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// AsyncOption configures an Async transport.
type AsyncOption func(*Async)

// WithAsyncClient sets the pooled HTTP client.
func WithAsyncClient(client *http.Client) AsyncOption {
	return func(a *Async) {
		a.httpClient = client
	}
}

// WithAsyncTimeout sets the per-request timeout.
func WithAsyncTimeout(d time.Duration) AsyncOption {
	return func(a *Async) {
		a.timeout = d
	}
}

// WithMaxInFlight bounds the number of concurrent exchanges.
func WithMaxInFlight(n int) AsyncOption {
	return func(a *Async) {
		a.maxInFlight = n
	}
}

// NewAsync creates a new async transport.
func NewAsync(opts ...AsyncOption) *Async {
	a := &Async{
		timeout:     DefaultPoolConfig().Timeout,
		maxInFlight: DefaultMaxInFlight,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.httpClient == nil {
		a.httpClient = NewPool(DefaultPoolConfig())
	}
	if a.maxInFlight <= 0 {
		a.maxInFlight = DefaultMaxInFlight
	}
	a.slots = make(chan struct{}, a.maxInFlight)
	return a
}

func (a *Async) Name() string { return "async" }

// Pending is an exchange that has been submitted but may not have completed.
type Pending struct {
	done chan struct{}
	resp *Response
	err  error
}

// Done is closed once the exchange has completed.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait parks the caller until the exchange completes or ctx is done.
func (p *Pending) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-p.done:
		return p.resp, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit starts the exchange and returns immediately.
// The exchange is bound to ctx: cancelling it aborts the request.
func (a *Async) Submit(ctx context.Context, req *Request) *Pending {
	p := &Pending{done: make(chan struct{})}

	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		p.err = ErrClosed
		close(p.done)
		return p
	}
	a.wg.Add(1)
	a.mu.RUnlock()

	go func() {
		defer a.wg.Done()
		defer close(p.done)

		select {
		case a.slots <- struct{}{}:
		case <-ctx.Done():
			p.err = ctx.Err()
			return
		}
		defer func() { <-a.slots }()

		p.resp, p.err = exchange(ctx, a.httpClient, a.timeout, req)
	}()

	return p
}

// RoundTrip submits the request and waits for it.
func (a *Async) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	return a.Submit(ctx, req).Wait(ctx)
}

// Close rejects new submissions, waits for in-flight exchanges and drops idle
// connections.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.wg.Wait()
	closeIdle(a.httpClient)
	return nil
}

// InFlight returns the number of exchanges currently holding a slot.
func (a *Async) InFlight() int {
	return len(a.slots)
}
