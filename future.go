package datamall

import "context"

// Future is the eventual result of a call started with Go.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on its own goroutine and returns immediately. Use it to issue
// several domain calls concurrently on one Client.
//
// Example:
//
//	arrivals := datamall.Go(ctx, func(ctx context.Context) (*bus.Arrival, error) {
//	    return buses.Arrival(ctx, "83139", "")
//	})
//	alerts := datamall.Go(ctx, trains.ServiceAlerts)
//	a, err := arrivals.Wait(ctx)
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Done is closed when the call has completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the call completes or ctx is done. When ctx ends first
// the zero value and a KindTransport error are returned; the call itself
// keeps the context it was started with.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, transportError("wait", "", ctx.Err())
	}
}

// WaitAll waits for every future and returns the first error encountered in
// argument order.
func WaitAll[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	out := make([]T, 0, len(futures))
	for _, f := range futures {
		v, err := f.Wait(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
